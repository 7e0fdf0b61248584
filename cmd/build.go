package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ksunext/docsite/internal/builder"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from the locale configuration and content",
	Long: `The build command loads the locale configuration, collects the Markdown
pages under the content directory, validates every navigation and sidebar
link, copies static assets and writes the rendered site to the output
directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := builder.Build(cmd.Context(), appConfig, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
