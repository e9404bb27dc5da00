package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"

	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/jsonvalue"
	"github.com/vitalvas/radvalue/pkg/packet"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// readPairs reads "Name = value" lines. Blank lines and lines starting with '#'
// are skipped. A value wrapped in matching quotes is unescaped for that quote.
func readPairs(r io.Reader, dict *dictionary.Dictionary) ([]*packet.Pair, error) {
	var pairs []*packet.Pair

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, text, found := strings.Cut(line, "=")
		if !found {
			return nil, merry.Errorf("line %d: invalid attribute format %q (expected 'Name = value')", lineNo, line)
		}

		text, quote := unquote(strings.TrimSpace(text))
		pair, err := packet.ParsePair(dict, strings.TrimSpace(name), text, quote)
		if err != nil {
			return nil, merry.Prependf(err, "line %d", lineNo)
		}

		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, merry.Wrap(err)
	}

	return pairs, nil
}

func unquote(text string) (string, valuebox.Quote) {
	if len(text) < 2 || text[0] != text[len(text)-1] {
		return text, valuebox.QuoteNone
	}

	var quote valuebox.Quote
	switch text[0] {
	case '"':
		quote = valuebox.QuoteDouble
	case '\'':
		quote = valuebox.QuoteSingle
	case '`':
		quote = valuebox.QuoteBacktick
	default:
		return text, valuebox.QuoteNone
	}

	return text[1 : len(text)-1], quote
}

func newJSONCommand(opts *rootOptions) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Convert \"Name = value\" lines from stdin to a JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pairs, err := readPairs(cmd.InOrStdin(), opts.dict)
			if err != nil {
				return err
			}

			data, err := jsonvalue.EncodePairs(pairs, prefix)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix added to every attribute name as \"prefix:Name\"")

	return cmd
}

func newFromJSONCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "from-json DOCUMENT...",
		Short: "Convert JSON scalars to values",
		Long: `Convert JSON scalars to values. Without --attr or --type every scalar keeps
its natural type: strings, booleans, the smallest unsigned integer type that fits,
signed for negative numbers and decimal for fractions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := valuebox.TypeInvalid
			var enum valuebox.EnumTable
			if opts.attr != "" || opts.typeName != "" {
				var err error
				if typ, enum, err = opts.target(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				v, err := jsonvalue.Decode([]byte(arg), typ, enum)
				if err != nil {
					return err
				}

				text, err := valuebox.Print(v, opts.quote)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", v.Type(), text)
			}

			return nil
		},
	}
}

func newEncodeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Encode \"Name = value\" lines from stdin as RADIUS attributes in hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pairs, err := readPairs(cmd.InOrStdin(), opts.dict)
			if err != nil {
				return err
			}

			data, err := packet.EncodePairs(pairs)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
}

func newDecodeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode hex encoded RADIUS attributes to \"Name = value\" lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return merry.Prepend(err, "invalid hex input")
			}

			pairs, err := packet.DecodePairs(opts.dict, data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, pair := range pairs {
				fmt.Fprintln(out, pair.String())
			}

			return nil
		},
	}
}
