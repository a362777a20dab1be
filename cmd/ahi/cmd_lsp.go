package main

import (
	"github.com/dhamidi/cmb/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that reports syntax errors",
		Long: `Starts a Language Server Protocol server on stdio. Documents are parsed
with the grammar configured for their file extension in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := lsp.LoadConfig(configFile)
			if err != nil {
				return err
			}
			server, err := lsp.NewServer(version, cfg)
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", lsp.DefaultConfigFile, "language config file")

	return cmd
}
