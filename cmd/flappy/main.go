// flappy is a side-scrolling flyer game for the terminal.
//
// Usage:
//
//	flappy play      - Play a game
//	flappy scores    - Browse recorded runs
//	flappy serve     - Serve recorded runs as JSON over HTTP
//	flappy config    - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search path, then embedded)
//	--seed <value>      - RNG seed for reproducible gates (0 = time based)
//	--tick <duration>   - Override the simulation step
//	--db <path>         - Database path (default: ~/.flappy/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagTick     time.Duration
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - keep the flyer in the air",
	Long: `Flappy is a terminal take on the side-scrolling flyer game.

Flap through the gaps between gates; every gate you reach scores a point.
Touching a gate dooms the flight and the ground ends it.

Available commands:
  play     - Play a game
  scores   - Browse recorded runs
  serve    - Serve recorded runs as JSON over HTTP
  config   - Print the effective configuration

Examples:
  flappy play
  flappy play --seed 42
  flappy scores
  flappy serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Simulation step (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
