package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "WFIREX_LOG_LEVEL"
	EnvLogNoColor = "WFIREX_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Settings is the process-wide logging shape shared by every logger built
// through observability.
type Settings struct {
	Level   zerolog.Level
	NoColor bool
}

var (
	configureOnce sync.Once
	current       = defaultSettings(ProfileRuntime)
	currentMu     sync.RWMutex
)

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure applies profile defaults and env overrides once per process.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		s := defaultSettings(profile)
		applyEnvOverrides(&s)
		apply(s)
	})
}

// SetLevel overrides the global level, e.g. from a config file. Unknown
// names leave the level unchanged and report false.
func SetLevel(raw string) bool {
	lvl, ok := ParseLevel(raw)
	if !ok {
		return false
	}
	currentMu.Lock()
	s := current
	currentMu.Unlock()
	s.Level = lvl
	apply(s)
	return true
}

// Current returns the active settings.
func Current() Settings {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

func apply(s Settings) {
	currentMu.Lock()
	current = s
	currentMu.Unlock()
	zerolog.SetGlobalLevel(s.Level)
}

func defaultSettings(profile Profile) Settings {
	switch profile {
	case ProfileTest:
		return Settings{Level: zerolog.DebugLevel, NoColor: true}
	default:
		return Settings{Level: zerolog.InfoLevel}
	}
}

func applyEnvOverrides(s *Settings) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		s.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		s.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
