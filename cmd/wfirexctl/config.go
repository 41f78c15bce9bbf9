package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/wfirexctl/internal/config"
)

// wfirexctl config.toml key mapping to runtime settings.
type fileConfig struct {
	Log struct {
		LogFile  string `toml:"log_file"`
		LogLevel string `toml:"log_level"`
	} `toml:"log"`
	App struct {
		ServicePort int      `toml:"service_port"`
		ServiceHost string   `toml:"service_host"`
		CorsOrigins []string `toml:"cors_origins"`
	} `toml:"app"`
	Appliance struct {
		Host           string `toml:"host"`
		Port           int    `toml:"port"`
		ConnectTimeout string `toml:"connect_timeout"`
		WriteTimeout   string `toml:"write_timeout"`
		ReadTimeout    string `toml:"read_timeout"`
		Waveforms      string `toml:"waveforms"`
	} `toml:"rs_wfirex4_api"`
}

// loadServiceConfig overlays the keys defined in path onto the defaults.
// A missing file is not an error: found reports false and defaults apply.
func loadServiceConfig(path string) (cfg config.ServiceConfig, found bool, err error) {
	cfg = config.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return config.ServiceConfig{}, false, fmt.Errorf("load wfirexctl config: %w", err)
	}

	if meta.IsDefined("log", "log_file") {
		cfg.Log.File = strings.TrimSpace(raw.Log.LogFile)
	}
	if meta.IsDefined("log", "log_level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.LogLevel)
	}
	if meta.IsDefined("app", "service_port") {
		cfg.App.Port = raw.App.ServicePort
	}
	if meta.IsDefined("app", "service_host") {
		cfg.App.Host = strings.TrimSpace(raw.App.ServiceHost)
	}
	if meta.IsDefined("app", "cors_origins") {
		cfg.App.CorsOrigins = normalizeList(raw.App.CorsOrigins)
	}
	if meta.IsDefined("rs_wfirex4_api", "host") {
		cfg.Appliance.Host = strings.TrimSpace(raw.Appliance.Host)
	}
	if meta.IsDefined("rs_wfirex4_api", "port") {
		cfg.Appliance.Port = raw.Appliance.Port
	}
	if meta.IsDefined("rs_wfirex4_api", "waveforms") {
		cfg.Appliance.WaveformsPath = strings.TrimSpace(raw.Appliance.Waveforms)
	}

	timeouts := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{key: "connect_timeout", raw: raw.Appliance.ConnectTimeout, dst: &cfg.Appliance.Timeouts.ConnectTimeout},
		{key: "write_timeout", raw: raw.Appliance.WriteTimeout, dst: &cfg.Appliance.Timeouts.WriteTimeout},
		{key: "read_timeout", raw: raw.Appliance.ReadTimeout, dst: &cfg.Appliance.Timeouts.ReadTimeout},
	}
	for _, tt := range timeouts {
		if !meta.IsDefined("rs_wfirex4_api", tt.key) {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(tt.raw))
		if err != nil {
			return config.ServiceConfig{}, false, fmt.Errorf("parse rs_wfirex4_api.%s: %w", tt.key, err)
		}
		*tt.dst = d
	}

	if err := config.ValidateServiceConfig(cfg); err != nil {
		return config.ServiceConfig{}, false, fmt.Errorf("load wfirexctl config: %w", err)
	}
	return cfg, true, nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		if v := strings.TrimSpace(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}
