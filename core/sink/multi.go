package sink

import (
	"errors"
	"io"

	"github.com/flexworks/co2flex/core/model"
)

// MultiSink fans results out to multiple sinks.
type MultiSink struct {
	Sinks []ResultSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...ResultSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordResults forwards the run to all sinks. Every sink is attempted, the
// joined errors are returned.
func (m *MultiSink) RecordResults(run RunInfo, results []model.AnnualResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordResults(run, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds external resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
