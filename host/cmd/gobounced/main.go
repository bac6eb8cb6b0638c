//go:build linux

package main

import (
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/womat/debug"

	"gobounce/core"
	"gobounce/softwdt"
)

const VERSION = "0.1.0"

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	var configFlag, logLevel string

	app := &cli.App{
		Name:    "gobounced",
		Usage:   "debounce switches on the GPIO character device",
		Version: VERSION,
		Description: "Scan switch inputs described by a YAML wiring table, debounce" +
			"\n them, and drive the shared indicator outputs. Runs on anything with" +
			"\n /dev/gpiochip*, optionally with an MCP23017 bank on I2C.",
		UsageText: "gobounced [--log standard|debug|full] --config <file>" +
			"\n\nEXAMPLE:" +
			"\n\trun the mill wiring with transition logging" +
			"\n\t\tgobounced --log debug --config /etc/gobounce/mill.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &configFlag, Usage: "load wiring table from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &logLevel, Value: "standard", Usage: "`LEVEL` defines the log level (error|standard|debug|full)"},
		},
		Action: func(ctx *cli.Context) error {
			debug.SetDebug(os.Stderr, logFlag(logLevel))

			if configFlag == "" {
				return errors.New("no config given, see --help")
			}
			cfg, err := LoadConfig(configFlag)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		debug.FatalLog.Print(err)
		return
	}
	exitCode = 0
}

// run wires the table to the hardware and scans until a signal or a
// fault ends the process.
func run(cfg *Config) error {
	driver, err := NewLinuxGPIO(cfg)
	if err != nil {
		return err
	}
	defer driver.Close()
	core.SetGPIODriver(driver)

	// A fault exits nonzero immediately. Requested lines die with the
	// process, so there is nothing to park the way firmware does;
	// whatever supervises the service decides what happens next.
	core.SetHalt(func(reason uint8) {
		debug.FatalLog.Printf("fault %d, outputs forced safe, exiting", reason)
		os.Exit(2)
	})

	wiring, err := cfg.WiringSpec().Build(TickHz)
	if err != nil {
		return errors.Wrap(err, "wiring table")
	}
	core.SetEmergencyShutdown(func(reason uint8) {
		wiring.ForceAllSafe()
	})

	clk := NewSystemClock()
	if err := wiring.Setup(clk.Now()); err != nil {
		return errors.Wrap(err, "configuring pins")
	}
	debug.InfoLog.Printf("wired %d switches to %d outputs on %s",
		len(wiring.Connections), len(wiring.Outputs), cfg.Chip)

	wd := softwdt.New(time.Duration(cfg.WatchdogMS)*time.Millisecond, func() {
		core.Fatal(core.FaultWatchdogReset)
	})
	core.SetWatchdog(wd)
	wd.Start()
	defer wd.Stop()

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)

	loop := core.NewScanLoop(wiring, clk)
	interval := time.Duration(cfg.ScanIntervalUS) * time.Microsecond
	for !core.IsShutdown() {
		select {
		case sig := <-sigC:
			debug.InfoLog.Printf("received %v, shutting down", sig)
			return nil
		default:
		}
		loop.Pass()
		time.Sleep(interval)
	}
	return nil
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
