// Package factory provides a small generic registry used to instantiate
// modules from configuration. A module is named by a type string and carries
// a map of raw settings; factories decode the settings into typed structs and
// return the concrete implementation. The result sinks in infra/sink register
// themselves here from their package init.
//
// Example usage:
//
//	reg := factory.NewRegistry[sink.ResultSink]()
//	reg.Register("csv", func(conf map[string]any) (sink.ResultSink, error) {
//	    var c struct {
//	        Dir string `json:"dir"`
//	    }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewCSVSink(c.Dir), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"dir": "output"}})
package factory
