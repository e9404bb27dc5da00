package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"

	"github.com/vitalvas/radvalue/pkg/log"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

func newParseCommand(opts *rootOptions) *cobra.Command {
	var showWire bool

	cmd := &cobra.Command{
		Use:   "parse VALUE...",
		Short: "Parse values and print them back in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, arg := range args {
				v, err := opts.parse(arg)
				if err != nil {
					return err
				}

				text, err := valuebox.Print(v, opts.quote)
				if err != nil {
					return err
				}

				if !showWire {
					fmt.Fprintln(out, text)
					continue
				}

				wire, err := valuebox.ToNetwork(v)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", text, hex.EncodeToString(wire))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showWire, "wire", false, "also print the network encoding in hex")

	return cmd
}

func newCastCommand(opts *rootOptions) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "cast VALUE",
		Short: "Convert a value to another data type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := valuebox.ParseType(to)
			if err != nil {
				return err
			}

			v, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			out, err := valuebox.Cast(dst, nil, v)
			if err != nil {
				opts.logger.WithFields(log.Fields{"from": v.Type().String(), "to": dst.String()}).Debugf("cast failed: %v", err)
				return err
			}

			text, err := valuebox.Print(out, opts.quote)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination data type")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newPrintBoundedCommand(opts *rootOptions) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "print-bounded VALUE",
		Short: "Print a value into a fixed size buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 0 {
				return merry.Errorf("invalid buffer size %d", size)
			}

			v, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			buf := make([]byte, size)
			written, required, err := valuebox.Snprint(buf, v, opts.quote)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\nwritten=%d required=%d truncated=%s\n",
				buf[:written], written, required, strconv.FormatBool(required >= size))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 64, "buffer size including the terminator")

	return cmd
}

func newCmpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cmp LEFT OPERATOR RIGHT",
		Short: "Compare two values",
		Long: `Compare two values of the same type. OPERATOR is one of = == != < <= > >=.
For prefixes "<=" means LEFT lies within RIGHT.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := valuebox.ParseOperator(args[1])
			if err != nil {
				return err
			}

			a, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			b, err := opts.parse(args[2])
			if err != nil {
				return err
			}

			ok, err := valuebox.CompareOp(op, a, b)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
