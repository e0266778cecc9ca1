package main

import (
	"context"
	"fmt"
	"log"

	"github.com/urfave/cli/v3"

	"github.com/ayusman/signtutor/internal/app"
	"github.com/ayusman/signtutor/internal/metrics"
	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/server"
	"github.com/ayusman/signtutor/internal/session"
	"github.com/ayusman/signtutor/internal/store"
	"github.com/ayusman/signtutor/internal/tray"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run the practice server and capture pipeline",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "tray",
			Usage: "Show the system tray menu (blocks on the main thread)",
		},
	},
	Action: runServe,
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Built-in alphabet plus anything trained into the store
	library := refs.WithBuiltins()
	if err := loadLetters(st, library); err != nil {
		return fmt.Errorf("load letters: %w", err)
	}

	manager := metrics.NewManager()
	scores := server.NewScoresHandler()
	trayUI := tray.New()

	presenter := session.Fanout{
		scores,
		trayUI,
		app.MetricsPresenter{Manager: manager},
	}

	sess := session.New(session.Config{
		Library:   library,
		Presenter: presenter,
		Scoring: pose.Options{
			Calibration:    cfg.Calibration,
			HistorySize:    cfg.HistorySize,
			TrendWindow:    cfg.TrendWindow,
			NoiseThreshold: cfg.NoiseThreshold,
		},
	})

	application := app.New(app.Config{
		Session:      sess,
		Metrics:      manager,
		CameraID:     cfg.CameraID,
		ActiveFPS:    cfg.ActiveFPS,
		IdleFPS:      cfg.IdleFPS,
		MotionThresh: cfg.MotionThreshold,
		Mirror:       cfg.Mirror,
	})
	if err := application.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer application.Stop()
	defer sess.Stop()

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		log.Printf("Serving static files from: %s", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		Library:   library,
		Session:   sess,
		Camera:    application.Camera(),
		Metrics:   manager,
		Scores:    scores,
	})

	log.Printf("Starting server on %s", cfg.Addr)

	if !cmd.Bool("tray") {
		return srv.ListenAndServe(cfg.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.Addr)
	}()

	trayUI.OnStop(func() {
		sess.Stop()
	})
	trayUI.OnQuit(func() {
		application.Stop()
	})

	// Blocks until the tray quits
	trayUI.Run()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// loadLetters copies trained reference letters from the store into the
// in-memory library, overriding builtins of the same letter.
func loadLetters(st *store.Store, library *refs.Library) error {
	letters, err := st.Letters().List()
	if err != nil {
		return err
	}

	loaded := 0
	for _, l := range letters {
		set, err := st.Letters().Get(l.Letter)
		if err != nil {
			log.Printf("Failed to load landmarks for %s: %v", l.Letter, err)
			continue
		}
		if err := library.Put(l.Letter, set); err != nil {
			log.Printf("Skipping stored letter %s: %v", l.Letter, err)
			continue
		}
		loaded++
	}

	log.Printf("Loaded %d letters from database", loaded)
	return nil
}
