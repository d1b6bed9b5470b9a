package sink

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
	"github.com/flexworks/co2flex/infra/logger"
)

// MQTTConfig defines the connection parameters for the MQTT result sink.
type MQTTConfig struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	Retain      bool   `json:"retain"`
	MaxRetries  int    `json:"max_retries"`
	BackoffMS   int    `json:"backoff_ms"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTSink publishes each result as a JSON message on a per-measure topic.
// With retain enabled subscribers see the latest run on connect.
type MQTTSink struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewMQTTSink connects to the broker and returns the sink.
func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	s := &MQTTSink{
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        logger.New("mqtt-sink"),
	}
	if s.prefix == "" {
		s.prefix = "co2flex/results"
	}
	if s.maxRetries <= 0 {
		s.maxRetries = 3
	}
	if s.backoff <= 0 {
		s.backoff = 100 * time.Millisecond
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	s.cli = c
	return s, nil
}

// resultMessage is the wire layout of one published result. Skipped
// objectives marshal as null.
type resultMessage struct {
	RunID        string   `json:"run_id"`
	Year         int      `json:"year"`
	TP           string   `json:"tp"`
	Name         string   `json:"name"`
	Scope        string   `json:"scope"`
	Maximization string   `json:"maximization"`
	LoadChange   string   `json:"load_change"`
	MaxEmission  *float64 `json:"max_emission"`
	AssCost      *float64 `json:"ass_cost"`
	MaxCost      *float64 `json:"max_cost"`
	AssEmission  *float64 `json:"ass_emission"`
	Timestamp    int64    `json:"timestamp"`
}

// RecordResults publishes one message per result.
func (s *MQTTSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	for _, r := range results {
		msg := resultMessage{
			RunID:        run.ID,
			Year:         run.Year,
			TP:           r.TP,
			Name:         r.Name,
			Scope:        string(r.Scope),
			Maximization: string(r.Maximization),
			LoadChange:   string(r.LoadChange),
			Timestamp:    run.Finished.UnixMilli(),
		}
		msg.MaxEmission, msg.AssCost = objectivePointers(r.Emission)
		msg.MaxCost, msg.AssEmission = objectivePointers(r.Cost)

		payload, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		if err := s.publish(resultTopic(s.prefix, r), payload); err != nil {
			return err
		}
	}
	return nil
}

func objectivePointers(o model.ObjectiveResult) (*float64, *float64) {
	if !o.Computed {
		return nil, nil
	}
	red, ass := o.Reduction, o.Associated
	return &red, &ass
}

// resultTopic builds <prefix>/<tp>/<name>/<load change>, spaces slugged.
func resultTopic(prefix string, r model.AnnualResult) string {
	return fmt.Sprintf("%s/%s/%s/%s", prefix, topicSegment(r.TP), topicSegment(r.Name), topicSegment(string(r.LoadChange)))
}

func topicSegment(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "#", "-")
	s = strings.ReplaceAll(s, "+", "-")
	return s
}

func (s *MQTTSink) publish(topic string, payload []byte) error {
	var publishErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		token := s.cli.Publish(topic, s.qos, s.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			return nil
		}
		s.log.Errorf("publish attempt %d to %s failed: %v", attempt+1, topic, publishErr)
		time.Sleep(s.backoff * time.Duration(1<<attempt))
	}
	return publishErr
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() error {
	if s.cli != nil && s.cli.IsConnected() {
		s.cli.Disconnect(250)
	}
	return nil
}
