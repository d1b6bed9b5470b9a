package sink

import "github.com/flexworks/co2flex/core/factory"

var registry = factory.NewRegistry[ResultSink]()

// RegisterSink adds a result sink factory identified by name.
func RegisterSink(name string, f factory.Factory[ResultSink]) error {
	return registry.Register(name, f)
}

// Types lists the registered sink type names.
func Types() []string {
	return registry.Types()
}

// NewResultSink creates a ResultSink from the provided configuration. No
// configuration yields a NopSink, several sinks are wrapped in a MultiSink.
func NewResultSink(cfgs []factory.ModuleConfig) (ResultSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return registry.Create(cfgs[0])
	}
	sinks := make([]ResultSink, len(cfgs))
	for i, c := range cfgs {
		s, err := registry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
