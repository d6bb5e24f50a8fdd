package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/ports"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

type Config struct {
	// Identity
	DeviceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS             byte
	RetainSnapshot  bool
	PublishInterval time.Duration

	Username string
	Password string
}

type Controller struct {
	svc ports.CalculatorService
	cfg Config
	log *zap.SugaredLogger

	client mqtt.Client
}

func New(svc ports.CalculatorService, cfg Config, log *zap.SugaredLogger) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.DeviceID == "" {
		return nil, errors.New("mqtt: DeviceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "solarthermal/" + cfg.DeviceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "solarthermal-" + cfg.DeviceID
	}
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = 1 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{
		svc: svc,
		cfg: cfg,
		log: log.With("controller", "mqtt"),
	}, nil
}

func (c *Controller) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	// Subscribe when connected/reconnected.
	opts.OnConnect = func(cl mqtt.Client) {
		topic := c.topic("set/+")
		token := cl.Subscribe(topic, c.cfg.QoS, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.Warnw("subscribe failed", "topic", topic, "error", err)
		}
	}

	c.client = mqtt.NewClient(opts)
	tok := c.client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	c.log.Infow("connected", "broker", c.cfg.BrokerURL, "base_topic", c.cfg.BaseTopic)

	// Publish loop: publish snapshot on interval, and only when changed.
	ticker := time.NewTicker(c.cfg.PublishInterval)
	defer ticker.Stop()

	last := c.publishSnapshot()

	for {
		select {
		case <-ctx.Done():
			c.client.Disconnect(250)
			return ctx.Err()

		case <-ticker.C:
			if cur := c.svc.Get(); cur != last {
				last = c.publishSnapshot()
			}
		}
	}
}

func (c *Controller) publishSnapshot() calculator.Snapshot {
	s := c.svc.Get()
	dto := snapshotDTO{
		DeviceID: c.cfg.DeviceID,
		Mode:     s.Mode.String(),
		Draft:    s.Draft,
	}
	if s.Mode == calculator.ModeResults {
		res := s.Result
		dto.Result = &res
	}
	b, err := json.Marshal(dto)
	if err != nil {
		c.log.Errorw("encode snapshot", "error", err)
		return s
	}
	c.client.Publish(c.topic("snapshot"), c.cfg.QoS, c.cfg.RetainSnapshot, b)
	return s
}

type snapshotDTO struct {
	DeviceID string         `json:"device_id"`
	Mode     string         `json:"mode"`
	Draft    sizing.Input   `json:"draft"`
	Result   *sizing.Result `json:"result,omitempty"`
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	// topic format: <base>/set/<command>
	t := msg.Topic()
	prefix := strings.TrimRight(c.cfg.BaseTopic, "/") + "/set/"
	if !strings.HasPrefix(t, prefix) {
		return
	}
	command := strings.TrimPrefix(t, prefix)

	if err := c.dispatch(command, msg.Payload()); err != nil {
		c.log.Warnw("command dropped", "command", command, "error", err)
	}
}

func (c *Controller) dispatch(command string, payload []byte) error {
	switch command {
	case "calculate":
		// {"value": true} sizes the draft, {"value": {...}} submits an input.
		if v, err := decodeValueStrict[bool](payload); err == nil {
			if !v {
				return nil
			}
			return c.svc.Calculate()
		}
		in, err := decodeValueStrict[sizing.Input](payload)
		if err != nil {
			return err
		}
		return c.svc.Submit(in)

	case "reset":
		v, err := decodeValueStrict[bool](payload)
		if err != nil {
			return err
		}
		if v {
			c.svc.Reset()
		}
		return nil

	default:
		f, err := sizing.ParseField(command)
		if err != nil {
			return err
		}
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return err
		}
		return c.svc.SetField(f, v)
	}
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var req valueReq[T]
	if err := dec.Decode(&req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
