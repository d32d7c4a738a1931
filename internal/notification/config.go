package notification

import (
	"time"

	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/smallbiznis/dentalpay/pkg/retry"
)

const (
	defaultSendTimeout = 30 * time.Second
	sweepBatchSize     = 100
)

type Config struct {
	Queue         string
	Workers       int
	QueueSize     int
	MaxRedelivery int
	SweepSpec     string
	Recipient     string
	SendTimeout   time.Duration
	Retry         retry.Config
}

func NewConfig(cfg config.Config) Config {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.Notification.MaxAttempts
	retryCfg.InitialDelay = 2 * time.Second
	retryCfg.MaxDelay = time.Minute

	return Config{
		Queue:         cfg.Notification.Queue,
		Workers:       cfg.Notification.Workers,
		QueueSize:     cfg.Notification.QueueSize,
		MaxRedelivery: cfg.Notification.MaxRedelivery,
		SweepSpec:     cfg.Notification.SweepSpec,
		Recipient:     cfg.Email.Recipient,
		SendTimeout:   defaultSendTimeout,
		Retry:         retryCfg,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Queue == "" {
		c.Queue = config.QueueMemory
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.MaxRedelivery < 0 {
		c.MaxRedelivery = 0
	}
	if c.SweepSpec == "" {
		c.SweepSpec = "@every 15m"
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultSendTimeout
	}
	return c
}
