package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/wfirexctl/internal/appliance"
)

type LogConfig struct {
	File  string
	Level string
}

type AppConfig struct {
	Host        string
	Port        int
	CorsOrigins []string
}

type ApplianceConfig struct {
	Host          string
	Port          int
	Timeouts      appliance.Config
	WaveformsPath string
}

// ServiceConfig is the full runtime configuration of wfirexctl.
type ServiceConfig struct {
	Log       LogConfig
	App       AppConfig
	Appliance ApplianceConfig
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Log: LogConfig{
			File:  "rs-wfirex4.log",
			Level: "info",
		},
		App: AppConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Appliance: ApplianceConfig{
			Host:          "rs-wfirex4",
			Port:          appliance.DefaultPort,
			Timeouts:      appliance.DefaultConfig(),
			WaveformsPath: "waveforms.toml",
		},
	}
}

// ListenAddr is the HTTP bind address.
func (c ServiceConfig) ListenAddr() string {
	return net.JoinHostPort(strings.TrimSpace(c.App.Host), strconv.Itoa(c.App.Port))
}

// ApplianceAddr is the appliance TCP endpoint.
func (c ServiceConfig) ApplianceAddr() string {
	return appliance.Address(c.Appliance.Host, c.Appliance.Port)
}

func ValidateServiceConfig(cfg ServiceConfig) error {
	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app.service_port out of range: %d", cfg.App.Port)
	}
	if strings.TrimSpace(cfg.Appliance.Host) == "" {
		return fmt.Errorf("rs_wfirex4_api.host is required")
	}
	if cfg.Appliance.Port <= 0 || cfg.Appliance.Port > 65535 {
		return fmt.Errorf("rs_wfirex4_api.port out of range: %d", cfg.Appliance.Port)
	}
	if strings.TrimSpace(cfg.Appliance.WaveformsPath) == "" {
		return fmt.Errorf("rs_wfirex4_api.waveforms is required")
	}
	for name, d := range map[string]time.Duration{
		"connect_timeout": cfg.Appliance.Timeouts.ConnectTimeout,
		"write_timeout":   cfg.Appliance.Timeouts.WriteTimeout,
		"read_timeout":    cfg.Appliance.Timeouts.ReadTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("rs_wfirex4_api.%s must not be negative", name)
		}
	}
	return nil
}
