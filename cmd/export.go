package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ksunext/docsite/internal/builder"
	"github.com/ksunext/docsite/internal/export"
)

var splitDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Prints the locale configuration as generator JSON",
	Long: `The export command writes the locale configuration in the shape a
documentation-site generator consumes: a "locales" object keyed by "root"
and each locale's path segment. With --split, one <lang>.json file per locale
is written to the given directory instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := builder.LoadLocales(appConfig.LocalesDir)
		if err != nil {
			return err
		}
		doc := export.New(set, appConfig.SiteTitle)

		if splitDir == "" {
			return export.Write(cmd.OutOrStdout(), doc)
		}
		written, err := export.WriteSplit(splitDir, doc)
		if err != nil {
			return err
		}
		for _, path := range written {
			logger.Info("wrote locale", "path", path)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&splitDir, "split", "", "write one JSON file per locale into this directory")
	rootCmd.AddCommand(exportCmd)
}
