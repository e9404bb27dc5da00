package main

import (
	"context"
	"io"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"

	"github.com/vitalvas/radvalue/pkg/dictionaries"
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/log"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

type rootOptions struct {
	dictPaths []string
	attr      string
	typeName  string
	quoteName string
	logLevel  string

	logger log.Logger
	dict   *dictionary.Dictionary
	quote  valuebox.Quote
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "radvalue",
		Short:        "Parse, cast, compare and print RADIUS attribute values",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&opts.dictPaths, "dict", nil, "extra dictionary files (YAML or JSON), merged over the built-in dictionary")
	flags.StringVar(&opts.attr, "attr", "", "attribute whose type and named values apply to the input")
	flags.StringVar(&opts.typeName, "type", "", "data type of the input when no --attr is given")
	flags.StringVar(&opts.quoteName, "quote", "none", "quoting of string input and output: none, single, double or backtick")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(
		newParseCommand(opts),
		newCastCommand(opts),
		newPrintBoundedCommand(opts),
		newCmpCommand(opts),
		newJSONCommand(opts),
		newFromJSONCommand(opts),
		newEncodeCommand(opts),
		newDecodeCommand(opts),
	)

	return cmd
}

func (o *rootOptions) setup(ctx context.Context, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := log.NewLoggerWithOutput(stderr, o.logLevel)
	o.logger = logger
	valuebox.SetLogger(logger)

	quote, err := valuebox.ParseQuote(o.quoteName)
	if err != nil {
		return err
	}
	o.quote = quote

	builtin, err := dictionaries.NewDefault()
	if err != nil {
		return err
	}

	if len(o.dictPaths) == 0 {
		o.dict = builtin
		return nil
	}

	source := &dictionary.MultiSource{Sources: []dictionary.Source{
		&dictionary.StaticSource{Dictionary: builtin},
		&dictionary.FileSource{Paths: o.dictPaths, Logger: logger},
	}}
	defer source.Close()

	o.dict, err = source.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("loaded %d dictionary files", len(o.dictPaths))

	return nil
}

// target resolves the data type and enumeration the input is parsed with.
func (o *rootOptions) target() (valuebox.Type, valuebox.EnumTable, error) {
	if o.attr != "" {
		attr, err := o.dict.LookupByName(o.attr)
		if err != nil {
			return valuebox.TypeInvalid, nil, err
		}
		return attr.DataType, attr.Enum(), nil
	}

	if o.typeName == "" {
		return valuebox.TypeInvalid, nil, merry.New("either --attr or --type is required")
	}

	typ, err := valuebox.ParseType(o.typeName)
	return typ, nil, err
}

func (o *rootOptions) parse(in string) (*valuebox.Value, error) {
	typ, enum, err := o.target()
	if err != nil {
		return nil, err
	}

	v, err := valuebox.Parse(in, typ, enum, o.quote)
	if err != nil {
		o.logger.WithField("type", typ.String()).Debugf("parse of %q failed: %v", in, err)
		return nil, err
	}
	return v, nil
}
