package checkcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/vippsas/safesql"
	"github.com/vippsas/safesql/internal/config"
	"github.com/vippsas/safesql/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Compile a single SQL statement read from a file and print its AST",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <file>")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if databaseURL != "" {
			cfg.DatabaseURL = databaseURL
		}
		logger := logging.New(cfg.LogPath)

		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		snap, err := safesql.LoadSchema(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Warn("continuing without a schema snapshot")
		}

		result, err := safesql.Compile(src, snap)
		if err != nil {
			return err
		}

		fmt.Println(repr.String(result.Command, repr.Indent("  ")))
		logger.WithField("invocation_id", result.InvocationID).Info("compiled successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
