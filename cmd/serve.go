package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ksunext/docsite/internal/builder"
	"github.com/ksunext/docsite/internal/server"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of the site, then starts a
local web server for the output directory. It watches the content, layouts,
static and locales directories and rebuilds the site when they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := builder.Build(ctx, appConfig, logger); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		rebuild := func(ctx context.Context) error {
			_, err := builder.Build(ctx, appConfig, logger)
			return err
		}
		dirs := []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir, appConfig.LocalesDir}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.Watch(ctx, dirs, server.DefaultDebounce, rebuild, logger)
		})
		g.Go(func() error {
			addr := fmt.Sprintf(":%d", serverPort)
			logger.Info("serving site", "dir", appConfig.OutputDir, "url", fmt.Sprintf("http://localhost%s", addr))
			return server.ListenAndServe(ctx, addr, server.Handler(appConfig.OutputDir, logger), logger)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 5173, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
