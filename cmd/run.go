package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flexworks/co2flex/app"
	"github.com/flexworks/co2flex/config"
	"github.com/flexworks/co2flex/infra/logger"
)

var (
	flagYear        int
	flagCombination bool
	flagMaxCO2      bool
	flagMaxCost     bool
	flagWorkers     int
	flagBasename    string
	flagOutputDir   string
)

func init() {
	f := rootCmd.Flags()
	f.IntVar(&flagYear, "year", 0, "year to compute")
	f.BoolVar(&flagCombination, "combination", false, "combine increase/reduction pairs")
	f.BoolVar(&flagMaxCO2, "max-co2", true, "compute the emission objective")
	f.BoolVar(&flagMaxCost, "max-cost", false, "compute the cost objective")
	f.IntVar(&flagWorkers, "workers", 0, "computation workers, 0 uses all CPUs")
	f.StringVar(&flagBasename, "basename", "", "output file basename")
	f.StringVar(&flagOutputDir, "output", "", "directory for the adapted measure sheet")
}

// applyRunFlags copies flags the user actually set over the file config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("year") {
		cfg.Calc.Year = flagYear
	}
	if f.Changed("combination") {
		cfg.Calc.Combination = flagCombination
	}
	if f.Changed("max-co2") {
		cfg.Calc.MaxCO2 = flagMaxCO2
	}
	if f.Changed("max-cost") {
		cfg.Calc.MaxCost = flagMaxCost
	}
	if f.Changed("workers") {
		cfg.Calc.Workers = flagWorkers
	}
	if f.Changed("basename") {
		cfg.Calc.Basename = flagBasename
	}
	if f.Changed("output") {
		cfg.Calc.OutputDir = flagOutputDir
	}
}

func runPotential(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyRunFlags(cmd, cfg)

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	_, _, err = svc.Run(ctx)
	return err
}
