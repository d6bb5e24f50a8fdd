package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

const EnvPrefix = "SOLARTHERMAL_"

type Config struct {
	DeviceID    string `koanf:"device_id"`
	LogLevel    string `koanf:"log_level"`
	Controllers struct {
		HTTP   HTTPConfig   `koanf:"http"`
		MQTT   MQTTConfig   `koanf:"mqtt"`
		MODBUS ModbusConfig `koanf:"modbus"`
	} `koanf:"controllers"`

	Display  DisplayConfig  `koanf:"display"`
	Building BuildingConfig `koanf:"building"`
}

// BuildingConfig optionally seeds the draft inputs. When all four are set
// the building is sized at startup.
type BuildingConfig struct {
	ApartmentCount          *int     `koanf:"apartment_count"`
	AvgBedroomsPerApartment *float64 `koanf:"avg_bedrooms_per_apartment"`
	UsableRoofAreaSqFt      *float64 `koanf:"usable_roof_area_sqft"`
	GasCostPerTherm         *float64 `koanf:"gas_cost_per_therm"`
}

type DisplayConfig struct {
	Locale string `koanf:"locale"`
}

type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

type MQTTConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BrokerURL       string        `koanf:"broker_url"`
	ClientID        string        `koanf:"client_id"`
	BaseTopic       string        `koanf:"base_topic"`
	QoS             byte          `koanf:"qos"`
	RetainSnapshot  bool          `koanf:"retain_snapshot"`
	PublishInterval time.Duration `koanf:"publish_interval"`
	Username        string        `koanf:"username"`
	Password        string        `koanf:"password"`
}

type ModbusConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	UnitID  byte   `koanf:"unit_id"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.DeviceID = "default"
	cfg.LogLevel = "info"
	cfg.Display.Locale = "en-US"
	cfg.Controllers.HTTP.Addr = ":8080"
	cfg.Controllers.MQTT.PublishInterval = 1 * time.Second
	cfg.Controllers.MODBUS.Addr = "127.0.0.1:1502"
	cfg.Controllers.MODBUS.UnitID = 1
	return cfg
}

// LoadConfig layers defaults, the config file and SOLARTHERMAL_* environment
// variables, in that order. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file missing → use defaults
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parse %s: %w", ext, err)
	}
	return nil
}

// sections whose keys are nested one level deeper: controllers.<name>.<key>
var nestedSections = map[string]bool{"controllers": true}

// sections holding plain keys: <section>.<key>
var flatSections = []string{"building", "display"}

// envKeyTransform maps an env var name (prefix removed) to a koanf key path,
// e.g. CONTROLLERS_MQTT_PUBLISH_INTERVAL -> controllers.mqtt.publish_interval.
func envKeyTransform(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "_")
	if nestedSections[parts[0]] {
		if len(parts) < 3 {
			return s
		}
		return parts[0] + "." + parts[1] + "." + strings.Join(parts[2:], "_")
	}

	for _, section := range flatSections {
		if strings.HasPrefix(s, section+"_") {
			return section + "." + strings.TrimPrefix(s, section+"_")
		}
	}
	return s
}

func applyDefaults(cfg *Config) {
	if cfg.DeviceID == "" {
		cfg.DeviceID = "default"
	}
	if cfg.Controllers.HTTP.Addr == "" {
		cfg.Controllers.HTTP.Addr = ":8080"
	}
	if !cfg.Controllers.HTTP.Enabled && !cfg.Controllers.MQTT.Enabled && !cfg.Controllers.MODBUS.Enabled {
		cfg.Controllers.HTTP.Enabled = true
	}
	if cfg.Controllers.MQTT.PublishInterval <= 0 {
		cfg.Controllers.MQTT.PublishInterval = 1 * time.Second
	}
	if cfg.Controllers.MODBUS.UnitID == 0 {
		cfg.Controllers.MODBUS.UnitID = 1
	}
	// PORT is common in containers; an explicit addr still wins.
	if v := os.Getenv("PORT"); v != "" && os.Getenv(EnvPrefix+"CONTROLLERS_HTTP_ADDR") == "" {
		cfg.Controllers.HTTP.Addr = ":" + v
	}
}

// Draft returns the seeded draft input and whether it is complete.
func (c Config) Draft() (sizing.Input, bool) {
	var in sizing.Input
	b := c.Building
	complete := true

	if b.ApartmentCount != nil {
		in.ApartmentCount = *b.ApartmentCount
	} else {
		complete = false
	}
	if b.AvgBedroomsPerApartment != nil {
		in.AvgBedroomsPerApartment = *b.AvgBedroomsPerApartment
	} else {
		complete = false
	}
	if b.UsableRoofAreaSqFt != nil {
		in.UsableRoofAreaSqFt = *b.UsableRoofAreaSqFt
	} else {
		complete = false
	}
	if b.GasCostPerTherm != nil {
		in.GasCostPerTherm = *b.GasCostPerTherm
	} else {
		complete = false
	}
	return in, complete
}
