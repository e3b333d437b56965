package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/lsp"
)

func newLSPCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long: `Run a Language Server Protocol server on stdin and stdout.

The server publishes lint diagnostics as documents change, formats
documents on request and offers lint fixes as quick fixes and as a
source.fixAll action. Configuration is loaded from the workspace root and
reloaded when a project config file is saved.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv, err := lsp.NewServer(lsp.Options{
				Version:    state.info.Version,
				ConfigPath: state.configPath,
				Debug:      state.debug,
			})
			if err != nil {
				return err
			}
			return srv.RunStdio()
		},
	}
}
