package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flexworks/co2flex/config"
	"github.com/flexworks/co2flex/dataset"
	"github.com/flexworks/co2flex/infra/logger"
	"github.com/flexworks/co2flex/monitor"
)

var fetchYear int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a year's series from the data monitor",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "year to download, defaults to the configured year")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Monitor.BaseURL == "" {
		return fmt.Errorf("monitor base_url not configured")
	}
	year := fetchYear
	if year == 0 {
		year = cfg.Calc.Year
	}

	logg := logger.New("fetch-command")
	client := monitor.New(cfg.Monitor)
	series, err := client.FetchYear(ctx, year)
	if err != nil {
		return fmt.Errorf("fetch %d: %w", year, err)
	}

	path := cfg.Data.SeriesPath(year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dataset.WriteAnnualSeries(f, series); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	avg, err := dataset.AveragesFromSeries(series)
	if err != nil {
		return err
	}
	logg.Infof("stored %d points for %d in %s", len(series), year, path)
	logg.Infof("derived averages: %.2f EUR/MWh, %.2f g CO2/kWh; add them to %s for runs",
		avg.Price, avg.EMF, cfg.Data.AveragesPath())
	return nil
}
