package sink

import "github.com/flexworks/co2flex/core/factory"

// Config lists the sinks a run reports to.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
