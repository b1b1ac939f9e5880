package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// NumberingDefaults configures how freshly created counters format
// their numbers. PadWidth <= 0 disables zero padding.
type NumberingDefaults struct {
	Prefix   string `mapstructure:"prefix"`
	Suffix   string `mapstructure:"suffix"`
	PadWidth int    `mapstructure:"padWidth"`
}

// NumberingConfig maps document type codes to formatting defaults.
type NumberingConfig struct {
	Defaults map[string]NumberingDefaults `mapstructure:"defaults"`
}

func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		Defaults: map[string]NumberingDefaults{
			"INVOICE":            {Prefix: "FT-", PadWidth: 5},
			"ELECTRONIC_INVOICE": {Prefix: "FE-", PadWidth: 5},
			"CREDIT_NOTE":        {Prefix: "NC-", PadWidth: 5},
			"DEBIT_NOTE":         {Prefix: "ND-", PadWidth: 5},
		},
	}
}

// NumberingConfigHolder exposes the current numbering configuration and
// reloads it when the backing file changes.
type NumberingConfigHolder struct {
	current atomic.Value // holds NumberingConfig
}

func NewNumberingConfigHolder() (*NumberingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("numbering")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/gestionale")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GESTIONALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultNumberingConfig()
		v.SetDefault("numbering.defaults", defaults.Defaults)
	}

	var cfg NumberingConfig
	if err := v.UnmarshalKey("numbering", &cfg); err != nil {
		return nil, err
	}
	if err := validateNumberingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &NumberingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated NumberingConfig
		if err := v.UnmarshalKey("numbering", &updated); err != nil {
			log.Printf("[numbering-config] reload failed: %v", err)
			return
		}
		if err := validateNumberingConfig(updated); err != nil {
			log.Printf("[numbering-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// Current returns the active configuration snapshot.
func (h *NumberingConfigHolder) Current() NumberingConfig {
	return h.current.Load().(NumberingConfig)
}

// DefaultsFor returns the formatting defaults for a document type.
// Types without an entry get an empty prefix/suffix and no padding.
func (h *NumberingConfigHolder) DefaultsFor(docType string) NumberingDefaults {
	return h.Current().Defaults[docType]
}

func validateNumberingConfig(cfg NumberingConfig) error {
	for docType, d := range cfg.Defaults {
		if d.PadWidth < 0 || d.PadWidth > 20 {
			return errors.New("numbering padWidth out of range for " + docType)
		}
	}
	return nil
}
