// Command gridsnake plays a single-player snake game in the terminal.
//
// Optionally it streams every frame to websocket spectators and writes a
// parquet trace of each finished game.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/brensch/gridsnake/config"
	"github.com/brensch/gridsnake/logging"
	"github.com/brensch/gridsnake/loop"
	"github.com/brensch/gridsnake/record"
	"github.com/brensch/gridsnake/spectate"
	"github.com/brensch/gridsnake/tui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, logCloser, err := logging.Open(cfg.LogPath, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logCloser.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", "err", err)
		logCloser.Close()
		log.Fatalf("gridsnake: %v", err)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	logger.Info("starting gridsnake",
		"seed", seed,
		"spectate_addr", cfg.SpectateAddr,
		"record_dir", cfg.RecordDir,
		"interval", loop.Interval,
	)

	l := loop.New(rng, logger.With("component", "loop"))

	var rec *record.Recorder
	if cfg.RecordDir != "" {
		rec = record.NewRecorder(cfg.RecordDir, logger.With("component", "record"))
		l.Observe(rec.Observe)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub(logger.With("component", "spectate"))
		l.Observe(hub.Publish)

		srv := &http.Server{
			Addr:              cfg.SpectateAddr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("spectator feed listening", "addr", cfg.SpectateAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(tui.NewModel(l), tea.WithAltScreen(), tea.WithContext(gctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	err := g.Wait()

	final := l.State()
	l.Stop()
	logger.Info("shutting down", "score", final.Score, "turn", final.Turn, "game_over", final.GameOver)

	if rec != nil {
		if cerr := rec.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
