package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects process identity, configured media sources, feature
// flags, and model configuration, then emits a single structured zerolog
// event summarising the startup state. One event makes it easy to see exactly
// how a run was configured when reading back a session's logs.
type StartupLogger struct {
	name         string
	version      string
	initDuration time.Duration

	mediaSources map[string]string
	features     map[string]bool
	config       map[string]string
}

// NewStartupLogger creates a StartupLogger for the given command name
// (e.g. "cliplens", "cliplens-web").
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:         name,
		mediaSources: make(map[string]string),
		features:     make(map[string]bool),
		config:       make(map[string]string),
	}
}

// Version sets the release version baked into the binary at build time.
func (s *StartupLogger) Version(v string) *StartupLogger {
	s.version = v
	return s
}

// MediaSource registers a configured media source (label and endpoint).
func (s *StartupLogger) MediaSource(label, endpoint string) *StartupLogger {
	s.mediaSources[label] = endpoint
	return s
}

// Feature registers a boolean feature flag (e.g. "sheets", "labelCatalogOverride").
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// Config registers a non-sensitive configuration key-value pair.
// Never pass API keys or credential paths' contents here.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long startup initialization took.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// EnvOrDefault returns the value of the named environment variable, or
// defaultVal if the variable is empty or unset.
func EnvOrDefault(envVar, defaultVal string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultVal
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	processDict := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", EnvOrDefault("CLIPLENS_LOG_LEVEL", "info"))

	if s.version != "" {
		processDict = processDict.Str("version", s.version)
	}

	evt = evt.Dict("process", processDict)

	if len(s.mediaSources) > 0 {
		evt = evt.Dict("mediaSources", dictFromMap(s.mediaSources))
	}

	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}

	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}

	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Startup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
