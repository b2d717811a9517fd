package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/app"
	"github.com/mindmorph/mindmorph/internal/quiz"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	banks, err := quiz.LoadBanks()
	if err != nil {
		return fmt.Errorf("load question banks: %w", err)
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	e.logger.Info("starting", zap.String("version", version))

	return app.Run(app.Options{
		Store:  e.store,
		Config: e.cfg,
		Logger: e.logger,
		Banks:  banks,
		Splash: !noSplash,
	})
}
