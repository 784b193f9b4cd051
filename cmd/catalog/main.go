package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-catalog/catalog/app"
	"github.com/Astemirdum/library-catalog/catalog/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Library catalog and lending service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API",
		Long: `Run the catalog HTTP API.

Configuration is read from the environment. Variables found in --env-file
are loaded first and never override ones already set.`,
		Example: `  CATALOG_MAX_LOANS=5 catalog serve
  catalog serve --env-file deploy/catalog.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil {
				if !os.IsNotExist(err) || cmd.Flags().Changed("env-file") {
					return err
				}
				stdLog.Printf("no %s file, using process environment", envFile)
			}
			cfg := config.NewConfig(
				config.WithLogLevel(zapcore.DebugLevel),
				config.WithWriteTimeout(time.Minute),
			)
			return app.Run(cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	return cmd
}
