package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-climb/internal/core"
	"github.com/vovakirdan/tower-climb/internal/registry"
	"github.com/vovakirdan/tower-climb/internal/storage"
)

var (
	flagSimTicks     int
	flagSimFireEvery int
	flagSimStrafe    int
	flagSimProgress  int
	flagSimRecord    bool
	flagSimVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless climb",
	Long: `Run a climb without a terminal UI and log how it ended.

The simulated player starts immediately, optionally fires every N ticks and
strafes left and right in N-tick legs. Useful for tuning tower configs and
as a smoke test: the same seed and config always give the same result.

Examples:
  towerclimb sim --seed 42
  towerclimb sim --ticks 20000 --fire-every 18 --strafe 30
  towerclimb sim tower_autofire --difficulty hard --verbose
  towerclimb sim --config ./my-tower.yaml --record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimFireEvery, "fire-every", 0, "Fire every N ticks (0 = never)")
	simCmd.Flags().IntVar(&flagSimStrafe, "strafe", 0, "Strafe in legs of N ticks (0 = stand still)")
	simCmd.Flags().IntVar(&flagSimProgress, "progress", 600, "Log progress every N ticks at debug level")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store the run in the run history")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log debug output")
}

// simOptions drives a headless climb.
type simOptions struct {
	Variant   string
	Ticks     int
	Seed      int64
	FireEvery int
	Strafe    int
	Progress  int
}

func runSim(_ *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "towerclimb-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	gameID, err := variantArg(args)
	if err != nil {
		logger.Fatal("bad variant", "error", err)
	}

	source, err := applyGameFlags()
	if err != nil {
		logger.Fatal("bad config", "error", err)
	}
	logger.Debug("config loaded", "source", source, "path", flagConfig, "difficulty", flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sum, err := simulate(simOptions{
		Variant:   gameID,
		Ticks:     flagSimTicks,
		Seed:      seed,
		FireEvery: flagSimFireEvery,
		Strafe:    flagSimStrafe,
		Progress:  flagSimProgress,
	}, logger)
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}

	logger.Info("climb finished",
		"variant", gameID,
		"outcome", sum.Outcome,
		"cause", sum.Cause,
		"floor", fmt.Sprintf("%d/%d", sum.Floor, sum.TotalFloors),
		"score", sum.Score,
		"destroyed", sum.Destroyed,
		"ticks", sum.Ticks,
		"seed", sum.Seed,
	)

	if flagSimRecord {
		recordSim(gameID, sum, logger)
	}
}

// simulate runs one climb through Step and returns its summary.
func simulate(opts simOptions, logger *log.Logger) (registry.RunSummary, error) {
	game, err := registry.Create(opts.Variant)
	if err != nil {
		return registry.RunSummary{}, err
	}
	reporter, ok := game.(registry.RunReporter)
	if !ok {
		return registry.RunSummary{}, fmt.Errorf("variant %q cannot report runs", opts.Variant)
	}

	rt := core.DefaultConfig()
	rt.Seed = opts.Seed
	game.Reset(rt)

	for t := range opts.Ticks {
		in := core.NewInputFrame()
		if t == 0 {
			in.Set(core.ActionStart)
		}
		if opts.FireEvery > 0 && t%opts.FireEvery == 0 {
			in.Set(core.ActionFire)
		}
		if opts.Strafe > 0 {
			if (t/opts.Strafe)%2 == 0 {
				in.Set(core.ActionLeft)
			} else {
				in.Set(core.ActionRight)
			}
		}

		res := game.Step(in)
		if res.Destroyed > 0 {
			logger.Debug("obstacle destroyed", "tick", t+1, "count", res.Destroyed, "floor", res.State.Floor)
		}
		if opts.Progress > 0 && (t+1)%opts.Progress == 0 {
			logger.Debug("progress", "tick", t+1, "floor", res.State.Floor, "score", res.State.Score)
		}
		if res.State.GameOver {
			break
		}
	}

	return reporter.Summary(), nil
}

// recordSim stores a simulated run. Unfinished runs count as abandoned.
func recordSim(gameID string, sum registry.RunSummary, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		GameID:      gameID,
		Outcome:     outcomeOf(sum.Outcome),
		Cause:       sum.Cause,
		Floor:       sum.Floor,
		TotalFloors: sum.TotalFloors,
		Destroyed:   sum.Destroyed,
		Score:       sum.Score,
		Ticks:       sum.Ticks,
		Seed:        sum.Seed,
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "db", flagDBPath)
}

// outcomeOf maps a game state name to a stored outcome.
func outcomeOf(state string) string {
	switch state {
	case storage.OutcomeWon, storage.OutcomeLost:
		return state
	default:
		return storage.OutcomeAbandoned
	}
}
