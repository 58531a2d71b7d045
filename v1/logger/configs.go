package logger

// Level controls the minimum severity that gets emitted.
type Level int

const (
	// Debug enables verbose diagnostic output.
	Debug Level = iota
	// Info is the default operational level.
	Info
	// Warning emits only warnings and errors.
	Warning
	// Error emits errors only.
	Error
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum severity to emit. Defaults to Info.
	Level Level

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string

	// Development switches to a human-readable console encoding instead
	// of JSON. Intended for local runs of the CLI.
	Development bool
}

// ParseLevel maps a textual level ("debug", "info", "warn", "error") to a
// Level, defaulting to Info for unknown input.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return Debug
	case "warn", "warning", "WARN", "WARNING":
		return Warning
	case "error", "ERROR":
		return Error
	default:
		return Info
	}
}
