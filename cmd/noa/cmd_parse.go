package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/format"
	"github.com/dhamidi/noa/syntax"
)

func (a *app) newParseCmd() *cobra.Command {
	var outputFormat string
	var includeTrivia bool
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Noa file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}

			parse := syntax.Parse
			if expression {
				parse = syntax.ParseExpression
			}
			tree, err := parse(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("parse %s: %w", src.Name(), err)
			}

			if outputFormat == "" {
				outputFormat = a.cfg.Format
			}
			opts := []format.Option{format.WithPalette(a.palette(a.stdout))}
			if includeTrivia {
				opts = append(opts, format.WithTrivia())
			}
			encoder, err := format.New(outputFormat, a.stdout, opts...)
			if err != nil {
				return err
			}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			// The JSON document already carries the diagnostics.
			if outputFormat == format.FormatJSON {
				if diagnostic.HasErrors(diagnostic.Filter(tree.Diagnostics(), a.cfg.Ignore)) {
					return errDiagnostics
				}
				return nil
			}
			return a.reportDiagnostics(src, tree.Diagnostics())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: text or json (default from config)")
	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "parse the input as a single expression")

	return cmd
}
