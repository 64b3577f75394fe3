package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tower-climb/internal/core"
	"github.com/vovakirdan/tower-climb/internal/platform/tui"
	"github.com/vovakirdan/tower-climb/internal/registry"
	"github.com/vovakirdan/tower-climb/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Climb the tower",
	Long: `Start a climb in the specified variant (default: tower).

Controls:
  W/A/S/D, arrows  - Move
  Q/E              - Rotate aim
  Mouse            - Aim (click fires)
  Space            - Fire
  Enter            - Start
  P/Esc            - Pause
  R                - Restart (after the climb ends)
  Ctrl+S           - Save a screenshot
  Ctrl+C           - Quit

Difficulty options:
  easy   - Start at lowest difficulty, faster reload
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, faster scroll
  fixed  - No progression, stays at config's initial level

Examples:
  towerclimb play
  towerclimb play tower_autofire --difficulty easy
  towerclimb play --seed 1234
  towerclimb play --config ./my-tower.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := variantArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
