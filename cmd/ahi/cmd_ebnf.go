package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/cmb/ebnf/grammar"
	"github.com/dhamidi/cmb/ebnf/parse"
	"github.com/dhamidi/cmb/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfMatchCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction == "" {
				return nil
			}

			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}

			if err := grammar.CheckLeftRecursion(g); err != nil {
				fmt.Println(err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfMatchCmd() *cobra.Command {
	var startProduction string
	var outputFormat string
	var trivia string
	var trace bool

	cmd := &cobra.Command{
		Use:   "match <grammar> <input>",
		Short: "Parse an input file with a grammar and print the syntax tree",
		Long: `Compiles the grammar into a combinator parser and runs it on the input.

Productions whose names start with an upper case letter skip whitespace (or
the --trivia production) before every token; all others are lexical and
match characters exactly.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarFile, inputFile := args[0], args[1]

			var opts []parse.Option
			if trivia != "" {
				opts = append(opts, parse.WithTriviaProduction(trivia))
			}
			if trace {
				opts = append(opts, parse.WithLogger(commonlog.GetLogger("ahi.match")))
			}

			src, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			encoder, err := format.New(outputFormat, os.Stdout, inputFile, src)
			if err != nil {
				return err
			}

			p, err := parse.NewParser(grammarFile, startProduction, opts...)
			if err != nil {
				printErrors(err)
				return err
			}

			node, err := p.Parse(inputFile, src)
			if err != nil {
				var serr *parse.SyntaxError
				if errors.As(err, &serr) {
					fmt.Fprintln(os.Stderr, err)
				}
				return err
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, lines)")
	cmd.Flags().StringVar(&trivia, "trivia", "", "lexical production to skip between tokens instead of whitespace")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every production at debug level (needs -vv)")
	cmd.MarkFlagRequired("start")

	return cmd
}

func printErrors(err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Println(e)
	}
}
