package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/obelisk/lanedefense/internal/config"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/game"
	"github.com/obelisk/lanedefense/internal/presenter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          Obelisk Lane Defense             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            headless simulation            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation driver ─────────────────────────────────────────────

func run() error {
	cfgPath := flag.String("config", os.Getenv("OBELISK_CONFIG"), "path to a TOML config file; empty uses the built-in defaults")
	demo := flag.Bool("demo", true, "let a scripted autopilot buy and cast abilities")
	flag.Parse()

	cfg := config.Defaults()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	g, err := game.New(cfg, log, game.WithPresenter(presenter.NewLogger(log)))
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	defer g.Close()

	printSection("Data")
	printStat("Abilities", g.Catalog().Count())
	printStat("Waves", g.Waves().Len())
	printStat("Lanes", cfg.Lanes.Count)
	printStat("Players", g.State().PlayerCount())
	fmt.Println()

	if *demo {
		newAutopilot(g, log.Named("demo")).attach()
	}

	var result *event.GameOver
	event.Subscribe(g.Bus(), func(ev event.GameOver) {
		result = &ev
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, gctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		ticker := time.NewTicker(cfg.Simulation.TickRate)
		defer ticker.Stop()

		printSection("Simulation")
		printReady(fmt.Sprintf("game loop started (tick: %s, speed: %.2f)", cfg.Simulation.TickRate, cfg.Simulation.DefaultGameSpeed))
		fmt.Println()

		for {
			select {
			case <-ticker.C:
				g.Tick(cfg.Simulation.TickRate)
				// GameOver is delivered on the tick after the run ended
				if result != nil {
					log.Info("simulation finished",
						zap.Bool("victory", result.Victory),
						zap.Int("waves", g.State().Wave.Index),
						zap.Int("xp", g.State().Score.XP),
						zap.Int("obelisk_health", g.State().Score.ObeliskHealth),
						zap.Float64("elapsed", g.State().Clock.Elapsed),
					)
					return nil
				}
			case <-gctx.Done():
				log.Info("simulation stopped", zap.Float64("elapsed", g.State().Clock.Elapsed))
				return nil
			}
		}
	})

	return eg.Wait()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
