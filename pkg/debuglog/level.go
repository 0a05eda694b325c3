package debuglog

// Level is a message severity. Lower values are more verbose.
type Level uint8

const (
	// LevelAll is the threshold that lets every message through.
	LevelAll Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCrit
	// LevelMax is one past the most severe level. Verbosity counts are
	// subtracted from it.
	LevelMax
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelAll:
		return "ALL"
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCrit:
		return "CRIT"
	default:
		return "UNKNOWN"
	}
}

// LevelFromVerbosity converts a verbosity count into a threshold.
func LevelFromVerbosity(count int) Level {
	lvl := int(LevelMax) - count
	switch {
	case lvl <= 0:
		return LevelAll
	case lvl > int(LevelMax):
		return LevelMax
	default:
		return Level(lvl)
	}
}

// ANSI sequences used when color is enabled.
const (
	colorTitle = "\033[95m"
	colorReset = "\033[0m"
	colorError = "\033[1;31m"
	colorWarn  = "\033[33m"
	colorDim   = "\033[2;37m"
)

// lineColor returns the color of the message body for a level, or "" for
// levels that are printed without color.
func lineColor(l Level) string {
	switch l {
	case LevelCrit, LevelError:
		return colorError
	case LevelWarn:
		return colorWarn
	case LevelDebug, LevelTrace:
		return colorDim
	default:
		return ""
	}
}
