package main

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/womat/debug"

	"gobounce/host/sim"
)

const VERSION = "0.1.0"

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	var scenarioFlag, logLevel string

	app := &cli.App{
		Name:    "bouncesim",
		Usage:   "replay switch scenarios against the debouncer core",
		Version: VERSION,
		Description: "Run YAML switch scenarios (presses, releases, contact chatter)" +
			"\n against the debouncer on a simulated clock and verify the expected" +
			"\n output states. Runs are deterministic and take no wall time.",
		UsageText: "bouncesim [--log standard|debug|full] --scenario <file> [more files...]" +
			"\n\nEXAMPLE:" +
			"\n\treplay one scenario with transition logging" +
			"\n\t\tbouncesim --log debug --scenario scenarios/shared_limits.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Destination: &scenarioFlag, Usage: "load scenario from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &logLevel, Value: "standard", Usage: "`LEVEL` defines the log level (error|standard|debug|full)"},
		},
		Action: func(ctx *cli.Context) error {
			debug.SetDebug(os.Stderr, logFlag(logLevel))

			paths := ctx.Args().Slice()
			if scenarioFlag != "" {
				paths = append([]string{scenarioFlag}, paths...)
			}
			if len(paths) == 0 {
				return errors.New("no scenario given, see --help")
			}

			failed := 0
			for _, path := range paths {
				if err := runScenario(path); err != nil {
					debug.ErrorLog.Printf("%s: %v", path, err)
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d scenarios failed", failed, len(paths))
			}
			return nil
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		debug.FatalLog.Print(err)
		return
	}
	exitCode = 0
}

func runScenario(path string) error {
	scn, err := sim.Load(path)
	if err != nil {
		return err
	}
	runner, err := sim.NewRunner(scn)
	if err != nil {
		return err
	}
	res, err := runner.Run()
	if res != nil {
		for _, f := range res.Failures {
			debug.ErrorLog.Print(f)
		}
	}
	return err
}

func logFlag(level string) int {
	switch level {
	case "full", "trace":
		return debug.Full
	case "debug":
		return debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "error":
		return debug.Error | debug.Fatal
	default:
		return debug.Standard
	}
}
