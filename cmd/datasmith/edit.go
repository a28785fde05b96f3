package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datasmith/datasmith/internal/store"
	"github.com/datasmith/datasmith/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Launch the interactive editor",
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newFileLogger(cfg)
	defer logger.Sync()

	// A broken session store degrades to an unsaved session rather than
	// blocking the editor.
	var st *store.Store
	var sess *store.Session
	if s, err := store.New(cfg.SessionDB); err != nil {
		logger.Warn("session store unavailable", zap.Error(err))
	} else {
		st = s
		defer st.Close()
		if sess, err = st.OpenSession(sessionName); err != nil {
			logger.Warn("open session failed", zap.String("session", sessionName), zap.Error(err))
			st.Close()
			st = nil
		}
	}

	app := tui.New(cfg, st, sess, logger)
	if err := app.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
