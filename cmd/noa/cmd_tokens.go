package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/format"
	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

func (a *app) newTokensCmd() *cobra.Command {
	var includeTrivia bool
	var raw bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the tokens of a Noa file",
		Long: `Print one line per token with its kind, span and text.

By default the tokens are those of the parsed tree, including tokens the
parser inserted as missing. With --raw the lexer output is printed as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}

			opts := []format.Option{format.WithPalette(a.palette(a.stdout))}
			if includeTrivia {
				opts = append(opts, format.WithTrivia())
			}
			enc := format.NewTokenEncoder(a.stdout, opts...)

			var diags []diagnostic.Diagnostic
			if raw {
				tokens, err := syntax.Lex(cmd.Context(), src)
				if err != nil {
					return fmt.Errorf("lex %s: %w", src.Name(), err)
				}
				if err := enc.EncodeTokens(tokens); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				diags = tokens.Diagnostics()
			} else {
				tree, err := syntax.Parse(cmd.Context(), src)
				if err != nil {
					return fmt.Errorf("parse %s: %w", src.Name(), err)
				}
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				diags = tree.Diagnostics()
			}

			return a.reportDiagnostics(src, diags)
		},
	}

	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the lexer output instead of the tree's tokens")

	return cmd
}

// reportDiagnostics renders the diagnostics that are not ignored to
// stderr and returns errDiagnostics if any of them is an error.
func (a *app) reportDiagnostics(src *source.Source, diags []diagnostic.Diagnostic) error {
	diags = diagnostic.Filter(diags, a.cfg.Ignore)
	r := format.NewDiagnosticRenderer(a.stderr, a.palette(a.stderr))
	if err := r.Render(src, diags); err != nil {
		return err
	}
	if diagnostic.HasErrors(diags) {
		return errDiagnostics
	}
	return nil
}
