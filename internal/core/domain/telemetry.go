package domain

import "strings"

// Outcome describes how a resolution was answered.
type Outcome string

const (
	// OutcomeMemo means the process-local memo answered.
	OutcomeMemo Outcome = "memo"
	// OutcomeTrusted means a store hit was returned without validation (production mode).
	OutcomeTrusted Outcome = "trusted"
	// OutcomeFresh means a store hit was validated against source modification times.
	OutcomeFresh Outcome = "fresh"
	// OutcomeStale means a store hit was outdated and recomputed.
	OutcomeStale Outcome = "stale"
	// OutcomeMiss means the store had no entry and the annotations were computed.
	OutcomeMiss Outcome = "miss"
)

// Outcomes lists every outcome, in the order above.
func Outcomes() []Outcome {
	return []Outcome{OutcomeMemo, OutcomeTrusted, OutcomeFresh, OutcomeStale, OutcomeMiss}
}

// Computed reports whether the provider was invoked for the outcome.
func (o Outcome) Computed() bool {
	return o == OutcomeStale || o == OutcomeMiss
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a level name to a LogLevel, defaulting to info if unknown.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
