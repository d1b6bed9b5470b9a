package sink

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
	"github.com/flexworks/co2flex/infra/logger"
)

// InfluxSink writes run summaries and per-measure results to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coresink.ResultSink {
	s := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := s.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			s.log.Errorf("influx health check error: %v", err)
		} else {
			s.log.Errorf("influx health status: %s", health.Status)
		}
		s.client.Close()
		return coresink.NopSink{}
	}
	return s
}

// RecordResults writes one point per result plus a run summary point, all
// stamped with the run's finish time.
func (s *InfluxSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range results {
		p := write.NewPointWithMeasurement("reduction_potential").
			AddTag("run_id", run.ID).
			AddTag("tp", r.TP).
			AddTag("name", r.Name).
			AddTag("scope", string(r.Scope)).
			AddTag("maximization", string(r.Maximization)).
			AddTag("load_change", string(r.LoadChange)).
			AddTag("year", strconv.Itoa(run.Year)).
			SetTime(run.Finished)
		addObjectiveFields(p, "max_emission", "ass_cost", r.Emission)
		addObjectiveFields(p, "max_cost", "ass_emission", r.Cost)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}

	summary := write.NewPointWithMeasurement("potential_run").
		AddTag("run_id", run.ID).
		AddTag("year", strconv.Itoa(run.Year)).
		AddField("cases", run.Cases).
		AddField("series_points", run.SeriesLen).
		AddField("duration_s", round3(run.Finished.Sub(run.Started).Seconds())).
		SetTime(run.Finished)
	return s.writeAPI.WritePoint(ctx, summary)
}

// addObjectiveFields adds the max/associated pair for one objective. Skipped
// objectives write no fields, line protocol has no NaN.
func addObjectiveFields(p *write.Point, maxField, assField string, o model.ObjectiveResult) {
	if !o.Computed {
		return
	}
	p.AddField(maxField, round3(o.Reduction))
	p.AddField(assField, round3(o.Associated))
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
