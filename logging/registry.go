package logging

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// LoggerPatternConfig assigns a level to every registered logger whose dotted name matches
// Pattern. A `*` matches any run of characters, e.g. "armsim.*".
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

const (
	// e.g. "motion".
	validLoggerSectionName = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// e.g. "motion" or "*".
	validLoggerSectionNameWithWildcard = `(` + validLoggerSectionName + `|\*)`
	// e.g. "armsim.*.ik".
	validLoggerName = `^` + validLoggerSectionNameWithWildcard + `(\.` + validLoggerSectionNameWithWildcard + `)*$`
)

var loggerPatternRegexp = regexp.MustCompile(validLoggerName)

// Validate checks the pattern syntax and the level name.
func (lpc LoggerPatternConfig) Validate() error {
	var err error
	if !loggerPatternRegexp.MatchString(lpc.Pattern) {
		err = multierr.Append(err, fmt.Errorf("invalid logger pattern %q", lpc.Pattern))
	}
	if _, levelErr := LevelFromString(lpc.Level); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	return err
}

func buildRegexFromPattern(pattern string) string {
	var matcher strings.Builder
	matcher.WriteRune('^')
	for _, ch := range pattern {
		switch ch {
		case '*':
			matcher.WriteString(`.*`)
		case '.':
			matcher.WriteString(`\.`)
		default:
			matcher.WriteRune(ch)
		}
	}
	matcher.WriteRune('$')
	return matcher.String()
}

type loggerRegistry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

var globalRegistry = newLoggerRegistry()

func newLoggerRegistry() *loggerRegistry {
	return &loggerRegistry{
		loggers: make(map[string]Logger),
	}
}

// register stores the logger and applies any configured pattern matching its name.
func (lr *loggerRegistry) register(name string, logger Logger) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[name] = logger
	lr.applyLocked(name, logger)
}

// registered reports whether exactly this logger is stored under name.
func (lr *loggerRegistry) registered(name string, logger Logger) bool {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	existing, ok := lr.loggers[name]
	return ok && existing == logger
}

func (lr *loggerRegistry) loggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

func (lr *loggerRegistry) updateLoggerLevel(name string, level Level) error {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok := lr.loggers[name]
	if !ok {
		return fmt.Errorf("logger named %s not recognized", name)
	}
	logger.SetLevel(level)
	return nil
}

// applyLocked sets the level of the last pattern matching name. Later patterns win.
func (lr *loggerRegistry) applyLocked(name string, logger Logger) {
	for _, lpc := range lr.logConfig {
		if !regexp.MustCompile(buildRegexFromPattern(lpc.Pattern)).MatchString(name) {
			continue
		}
		level, err := LevelFromString(lpc.Level)
		if err != nil {
			continue
		}
		logger.SetLevel(level)
	}
}

func (lr *loggerRegistry) updateConfig(logConfig []LoggerPatternConfig) error {
	var errs error
	valid := make([]LoggerPatternConfig, 0, len(logConfig))
	for _, lpc := range logConfig {
		if err := lpc.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		valid = append(valid, lpc)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = valid
	for name, logger := range lr.loggers {
		lr.applyLocked(name, logger)
	}
	return errs
}

func (lr *loggerRegistry) registeredLoggerNames() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	names := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterLogger registers a logger under name. Subloggers of a registered logger are registered
// as they are created.
func RegisterLogger(name string, logger Logger) {
	globalRegistry.register(name, logger)
}

// LoggerNamed returns the logger registered under name, if any.
func LoggerNamed(name string) (logger Logger, ok bool) {
	return globalRegistry.loggerNamed(name)
}

// UpdateLoggerLevel sets the level of a registered logger.
func UpdateLoggerLevel(name string, level Level) error {
	return globalRegistry.updateLoggerLevel(name, level)
}

// UpdateLoggerConfig replaces the pattern config and reapplies it to every registered logger.
// Invalid entries are skipped and reported together.
func UpdateLoggerConfig(logConfig []LoggerPatternConfig) error {
	return globalRegistry.updateConfig(logConfig)
}

// GetRegisteredLoggerNames returns the sorted names of all registered loggers.
func GetRegisteredLoggerNames() []string {
	return globalRegistry.registeredLoggerNames()
}
