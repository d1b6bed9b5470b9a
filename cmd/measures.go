package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flexworks/co2flex/app"
	"github.com/flexworks/co2flex/config"
	"github.com/flexworks/co2flex/dataset"
)

var measuresCmd = &cobra.Command{
	Use:   "measures",
	Short: "Print the measure sheet after grid adaptation",
	RunE:  runMeasures,
}

func init() {
	rootCmd.AddCommand(measuresCmd)
}

func runMeasures(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	cases, err := svc.LoadAdaptedMeasures()
	if err != nil {
		return err
	}
	return dataset.WriteMeasuresCSV(cmd.OutOrStdout(), cases)
}
