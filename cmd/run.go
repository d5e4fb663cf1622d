package cmd

import (
	"fmt"
	"os"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/app"
	"github.com/vchandu111/IntervueAI/internal/audio"
	"github.com/vchandu111/IntervueAI/internal/config"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/spf13/cobra"
)

// runApp loads config, opens the journal, builds the service client and
// audio tooling, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	if cfg.DBPath != "" {
		if p, _ := cmd.Flags().GetString("db"); p == "" {
			dbPath = cfg.DBPath
			if err := store.EnsureDir(dbPath); err != nil {
				return err
			}
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Client:  api.NewClient(cfg.ServiceURL, api.WithTimeout(cfg.RequestTimeout)),
		Events:  st.EventRepo(),
		Voice:   cfg.Voice,
		AudioOn: cfg.AudioEnabled,
	}
	if noAudio, _ := cmd.Flags().GetBool("no-audio"); noAudio {
		opts.AudioOn = false
	}

	if opts.AudioOn {
		opts.Player, opts.Recorder = buildAudio(cfg)
		if opts.Player == nil && opts.Recorder == nil {
			opts.AudioOn = false
		}
	}

	return app.Run(opts)
}

// buildAudio resolves the playback and capture tools. Either may be
// missing; the interview still works with typed answers and on-screen
// text.
func buildAudio(cfg *config.Config) (audio.Player, audio.Recorder) {
	var player audio.Player
	if len(cfg.PlayerCommand) > 0 {
		player = audio.NewExecPlayerCommand(cfg.PlayerCommand...)
	} else if p, err := audio.NewExecPlayer(); err == nil {
		player = p
	} else {
		fmt.Fprintln(os.Stderr, "No audio player found; narration disabled.")
	}

	var recorder audio.Recorder
	if len(cfg.RecorderCommand) > 0 {
		recorder = audio.NewExecRecorderCommand(cfg.RecorderCommand...)
	} else if r, err := audio.NewExecRecorder(); err == nil {
		recorder = r
	} else {
		fmt.Fprintln(os.Stderr, "No recording tool found; voice answers disabled.")
	}

	return player, recorder
}
