// towerclimb is a terminal tower climber: ascend a procedurally generated
// tower, shooting and dodging moving obstacles while the view scrolls up.
//
// Usage:
//
//	towerclimb list              - List game variants
//	towerclimb play [variant]    - Climb
//	towerclimb menu              - Pick variants interactively
//	towerclimb sim [variant]     - Run a headless climb and log the outcome
//	towerclimb runs [variant]    - Show run history
//	towerclimb serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible towers
//	--db <path>           - Set database path (default: ~/.towerclimb/runs.db)
//	--config <path>       - Load a custom tower YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/games/tower"
	"github.com/vovakirdan/tower-climb/internal/registry"
)

const defaultVariant = "tower"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "towerclimb",
	Short: "Tower Climb - shoot your way up a scrolling tower",
	Long: `Tower Climb is a terminal arcade game. Climb a procedurally generated
tower while the view scrolls upward, dodging and shooting moving obstacles.
Touching an obstacle or a wall ends the climb; reaching the top floor wins.

Available commands:
  list     - Show game variants
  play     - Climb directly
  menu     - Interactive variant picker
  sim      - Headless climb for tuning configs
  runs     - View run history
  serve    - Start SSH server for remote play

Examples:
  towerclimb play
  towerclimb play tower_mouse --difficulty hard
  towerclimb sim --ticks 5000 --fire-every 20
  towerclimb runs --plain
  towerclimb serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.towerclimb/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGameFlags validates the config flags and hands them to the game
// package before any variant is created.
func applyGameFlags() (config.Source, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	_, source, err := config.LoadTower(flagConfig)
	if err != nil {
		return source, err
	}

	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	return source, nil
}

// variantArg returns the variant named in args, or the default one.
func variantArg(args []string) (string, error) {
	id := defaultVariant
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown variant %q, run 'towerclimb list' to see variants", id)
	}
	return id, nil
}
