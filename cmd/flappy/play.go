package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W, left click   - Flap (also starts the game)
  Enter/R, right click     - Restart after game over
  ?                        - Toggle help
  Q/Esc/Ctrl+C             - Quit

Logs are written to ~/.flappy/flappy.log.

Examples:
  flappy play
  flappy play --seed 42
  flappy play --mute
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}

	rc := runtimeConfig(cfg)

	logFile, err := openLogFile()
	if err != nil {
		logFile = nopCloser{io.Discard}
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "flappy")
	if err != nil {
		return err
	}
	logger.Info("starting", "seed", rc.Seed, "tick", rc.TickInterval, "size", [2]int{rc.ScreenW, rc.ScreenH})

	engine := flappy.New(cfg, rc.Seed)

	var capability audio.Capability = audio.System{}
	if flagMute {
		capability = audio.Muted{}
	}
	player := audio.NewPlayer(cfg.Audio, capability, logger)
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	defer player.Close()
	engine.SetSound(player.Sink())

	driver := flappy.NewDriver(engine, rc.TickInterval, logger)

	opts := tui.Options{
		Driver: driver,
		Seed:   rc.Seed,
		Audio:  !player.Silent(),
		Logger: logger,
		Width:  rc.ScreenW,
		Height: rc.ScreenH,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works without storage
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, opts)
	played, dropped := player.Stats()
	logger.Info("stopped", "sounds", played, "dropped", dropped)
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// runtimeConfig resolves terminal size, tick interval and seed.
func runtimeConfig(cfg config.FlappyConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}

	rc.TickInterval = cfg.Physics.TickInterval
	if flagTick > 0 {
		rc.TickInterval = flagTick
	}

	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}
