// Package config loads application settings using Viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the dashboard settings.
type Config struct {
	CurrencySymbol         string        `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	StandardApplicationFee string        `mapstructure:"standard_application_fee" yaml:"standard_application_fee"`
	WizardSessionTTL       time.Duration `mapstructure:"wizard_session_ttl" yaml:"-"`
	LateFeeGraceDays       int           `mapstructure:"late_fee_grace_days" yaml:"late_fee_grace_days"`
	LateFeeAmount          string        `mapstructure:"late_fee_amount" yaml:"late_fee_amount"`
	NATSURL                string        `mapstructure:"nats_url" yaml:"nats_url"`
	NATSStoreDir           string        `mapstructure:"nats_store_dir" yaml:"nats_store_dir"`
	SeedDemoData           bool          `mapstructure:"seed_demo_data" yaml:"seed_demo_data"`
}

// envKeys lists every key bound to a PROPERTYDESK_ variable.
var envKeys = []string{
	"currency_symbol",
	"standard_application_fee",
	"wizard_session_ttl",
	"late_fee_grace_days",
	"late_fee_amount",
	"nats_url",
	"nats_store_dir",
	"seed_demo_data",
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CurrencySymbol:         "$",
		StandardApplicationFee: "50",
		WizardSessionTTL:       2 * time.Hour,
		LateFeeGraceDays:       5,
		LateFeeAmount:          "50",
		NATSStoreDir:           "pb_data/nats",
		SeedDemoData:           true,
	}
}

// Load reads settings with precedence ENV vars > config file > defaults.
// An empty path means ProjectPath(), which may be absent.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("currency_symbol", def.CurrencySymbol)
	v.SetDefault("standard_application_fee", def.StandardApplicationFee)
	v.SetDefault("wizard_session_ttl", def.WizardSessionTTL.String())
	v.SetDefault("late_fee_grace_days", def.LateFeeGraceDays)
	v.SetDefault("late_fee_amount", def.LateFeeAmount)
	v.SetDefault("nats_url", def.NATSURL)
	v.SetDefault("nats_store_dir", def.NATSStoreDir)
	v.SetDefault("seed_demo_data", def.SeedDemoData)

	v.SetEnvPrefix("PROPERTYDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key, "PROPERTYDESK_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = ProjectPath()
	}
	if explicit || fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.WizardSessionTTL <= 0 {
		return nil, fmt.Errorf("wizard_session_ttl must be positive, got %s", cfg.WizardSessionTTL)
	}
	return &cfg, nil
}

// StandardFee is the parsed standard application fee. Unparseable values
// count as zero.
func (c *Config) StandardFee() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(c.StandardApplicationFee))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// EmbeddedNATS reports whether submissions go to an in-process server.
func (c *Config) EmbeddedNATS() bool {
	return strings.TrimSpace(c.NATSURL) == ""
}

// ProjectPath returns ./propertydesk.yml.
func ProjectPath() string {
	return "propertydesk.yml"
}

// fileConfig is the on-disk shape; durations are written as "2h0m0s".
type fileConfig struct {
	Config           `yaml:",inline"`
	WizardSessionTTL string `yaml:"wizard_session_ttl"`
}

// Write saves cfg as YAML to path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(fileConfig{Config: *cfg, WizardSessionTTL: cfg.WizardSessionTTL.String()})
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
