package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// SurveyConfig holds analytics tunables that can change without a restart.
type SurveyConfig struct {
	DefaultPageSize      int `mapstructure:"defaultPageSize"`
	MaxPageSize          int `mapstructure:"maxPageSize"`
	TopSatisfactionLimit int `mapstructure:"topSatisfactionLimit"`
	SpecialtySearchLimit int `mapstructure:"specialtySearchLimit"`
}

func DefaultSurveyConfig() SurveyConfig {
	return SurveyConfig{
		DefaultPageSize:      10,
		MaxPageSize:          100,
		TopSatisfactionLimit: 5,
		SpecialtySearchLimit: 10,
	}
}

type SurveyConfigHolder struct {
	current atomic.Value // holds SurveyConfig
}

// NewStaticSurveyConfigHolder returns a holder pinned to cfg.
func NewStaticSurveyConfigHolder(cfg SurveyConfig) *SurveyConfigHolder {
	holder := &SurveyConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// NewSurveyConfigHolder reads survey.yml when present and watches it for changes.
func NewSurveyConfigHolder(log *zap.Logger) (*SurveyConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("survey")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/dentalpay")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DENTALPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSurveyConfig()
	v.SetDefault("survey.defaultPageSize", defaults.DefaultPageSize)
	v.SetDefault("survey.maxPageSize", defaults.MaxPageSize)
	v.SetDefault("survey.topSatisfactionLimit", defaults.TopSatisfactionLimit)
	v.SetDefault("survey.specialtySearchLimit", defaults.SpecialtySearchLimit)

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		found = false
	}

	var cfg SurveyConfig
	if err := v.UnmarshalKey("survey", &cfg); err != nil {
		return nil, err
	}
	if err := validateSurveyConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticSurveyConfigHolder(cfg)
	if !found {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated SurveyConfig
		if err := v.UnmarshalKey("survey", &updated); err != nil {
			log.Warn("survey config reload failed", zap.Error(err))
			return
		}
		if err := validateSurveyConfig(updated); err != nil {
			log.Warn("invalid survey config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("survey config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *SurveyConfigHolder) Get() SurveyConfig {
	if h == nil {
		return DefaultSurveyConfig()
	}
	cfg, ok := h.current.Load().(SurveyConfig)
	if !ok {
		return DefaultSurveyConfig()
	}
	return cfg
}

func validateSurveyConfig(cfg SurveyConfig) error {
	if cfg.DefaultPageSize <= 0 {
		return errors.New("survey.defaultPageSize must be positive")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("survey.maxPageSize must be >= survey.defaultPageSize")
	}
	if cfg.TopSatisfactionLimit <= 0 {
		return errors.New("survey.topSatisfactionLimit must be positive")
	}
	if cfg.SpecialtySearchLimit <= 0 {
		return errors.New("survey.specialtySearchLimit must be positive")
	}
	return nil
}
