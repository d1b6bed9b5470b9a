package sink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flexworks/co2flex/core/factory"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// fileSinkConfig is shared by the sinks that write one file per run.
type fileSinkConfig struct {
	Dir      string `json:"dir"`
	Basename string `json:"basename"`
}

func decodeFileSink(conf map[string]any) (fileSinkConfig, error) {
	c := fileSinkConfig{Dir: "output"}
	if err := factory.Decode(conf, &c); err != nil {
		return fileSinkConfig{}, err
	}
	if c.Dir == "" {
		c.Dir = "output"
	}
	return c, nil
}

// init registers built-in result sinks.
func init() {
	_ = coresink.RegisterSink("nop", func(map[string]any) (coresink.ResultSink, error) {
		return coresink.NopSink{}, nil
	})

	_ = coresink.RegisterSink("csv", func(conf map[string]any) (coresink.ResultSink, error) {
		c, err := decodeFileSink(conf)
		if err != nil {
			return nil, err
		}
		return NewCSVSink(c.Dir, c.Basename), nil
	})

	_ = coresink.RegisterSink("xlsx", func(conf map[string]any) (coresink.ResultSink, error) {
		c, err := decodeFileSink(conf)
		if err != nil {
			return nil, err
		}
		return NewXLSXSink(c.Dir, c.Basename), nil
	})

	_ = coresink.RegisterSink("pdf", func(conf map[string]any) (coresink.ResultSink, error) {
		c, err := decodeFileSink(conf)
		if err != nil {
			return nil, err
		}
		return NewPDFSink(c.Dir, c.Basename), nil
	})

	_ = coresink.RegisterSink("chart", func(conf map[string]any) (coresink.ResultSink, error) {
		c, err := decodeFileSink(conf)
		if err != nil {
			return nil, err
		}
		return NewChartSink(c.Dir, c.Basename), nil
	})

	_ = coresink.RegisterSink("sqlite", func(conf map[string]any) (coresink.ResultSink, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			c.Path = "output/results.db"
		}
		return NewSQLiteSink(c.Path)
	})

	_ = coresink.RegisterSink("influx", func(conf map[string]any) (coresink.ResultSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coresink.RegisterSink("mqtt", func(conf map[string]any) (coresink.ResultSink, error) {
		var c MQTTConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMQTTSink(c)
	})

	_ = coresink.RegisterSink("prometheus", func(map[string]any) (coresink.ResultSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})
}
