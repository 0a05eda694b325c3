package debuglog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/mcbin/mcdiag/pkg/config"
)

// Logger holds the state of one diagnostic log stream. The zero value is not
// usable; create loggers with New.
type Logger struct {
	prefix string
	source func() config.Logging

	once  sync.Once
	level Level
	color bool
	out   io.Writer
	lock  *sync.Mutex
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the sink. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// WithConfig makes the logger use cfg instead of reading the process
// configuration on first use.
func WithConfig(cfg config.Logging) Option {
	return func(l *Logger) {
		l.source = func() config.Logging { return cfg }
	}
}

// WithEnvironment makes the logger resolve its settings from environment
// instead of the process environment.
func WithEnvironment(environment map[string]string) Option {
	return func(l *Logger) {
		l.source = func() config.Logging {
			cfg, _ := config.Load(nil, environment)
			return cfg.Logging
		}
	}
}

// New creates a logger whose lines are tagged with prefix. Nothing is read
// from the configuration until the first message.
func New(prefix string, opts ...Option) *Logger {
	l := &Logger{
		prefix: prefix,
		source: processLogging,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLogger = sync.OnceValue(func() *Logger {
	cfg, _ := config.FromEnvironment()
	return New(cfg.Logging.Prefix, WithConfig(cfg.Logging))
})

// Default returns the process-wide logger. It is created on first use.
func Default() *Logger {
	return defaultLogger()
}

func processLogging() config.Logging {
	cfg, _ := config.FromEnvironment()
	return cfg.Logging
}

// init resolves the settings. It runs exactly once per Logger.
func (l *Logger) init() {
	if l.out == nil {
		l.out = os.Stderr
	}
	l.lock = lockFor(l.out)

	cfg := l.source()
	l.level = LevelWarn
	if cfg.Verbosity == "" {
		return
	}
	if count, ok := scanInt(cfg.Verbosity); ok {
		l.level = LevelFromVerbosity(count)
	}
	l.color = cfg.Color != ""
}

// Level returns the threshold below which messages are dropped.
func (l *Logger) Level() Level {
	l.once.Do(l.init)
	return l.level
}

// ColorEnabled reports whether lines carry ANSI colors.
func (l *Logger) ColorEnabled() bool {
	l.once.Do(l.init)
	return l.color
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.once.Do(l.init)
	return level >= l.level
}

// Emit writes one line for a message logged at level from function fn, line
// line. Messages below the threshold are dropped.
func (l *Logger) Emit(level Level, fn string, line int, format string, args ...any) {
	l.once.Do(l.init)
	if l.level > level {
		return
	}
	defer func() {
		// a panicking sink must not take the caller down
		_ = recover()
	}()

	msg := l.format(level, fn, line, format, args)

	l.lock.Lock()
	defer l.lock.Unlock()
	_, _ = l.out.Write(msg)
	if f, ok := l.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

func (l *Logger) format(level Level, fn string, line int, format string, args []any) []byte {
	var title, reset, body string
	if l.color {
		title, reset, body = colorTitle, colorReset, lineColor(level)
		if body == "" {
			title = ""
		}
	}

	var b bytes.Buffer
	b.Grow(len(l.prefix) + len(fn) + len(format) + 48)
	b.WriteByte('[')
	b.WriteString(title)
	b.WriteString(l.prefix)
	b.WriteString(reset)
	b.WriteString("] ")
	b.WriteString(body)
	b.WriteString(fn)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(line))
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, args...)
	b.WriteString(colorReset)
	b.WriteByte('\n')
	return b.Bytes()
}

// Logf logs a formatted message at level, tagged with the caller's location.
func (l *Logger) Logf(level Level, format string, args ...any) {
	l.logDepth(2, level, format, args)
}

// Trace logs at LevelTrace.
func (l *Logger) Trace(format string, args ...any) { l.logDepth(2, LevelTrace, format, args) }

// Debug logs at LevelDebug.
func (l *Logger) Debug(format string, args ...any) { l.logDepth(2, LevelDebug, format, args) }

// Info logs at LevelInfo.
func (l *Logger) Info(format string, args ...any) { l.logDepth(2, LevelInfo, format, args) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(format string, args ...any) { l.logDepth(2, LevelWarn, format, args) }

// Error logs at LevelError.
func (l *Logger) Error(format string, args ...any) { l.logDepth(2, LevelError, format, args) }

// Crit logs at LevelCrit.
func (l *Logger) Crit(format string, args ...any) { l.logDepth(2, LevelCrit, format, args) }

// Logf logs through the default logger.
func Logf(level Level, format string, args ...any) {
	Default().logDepth(2, level, format, args)
}

// Trace logs at LevelTrace through the default logger.
func Trace(format string, args ...any) { Default().logDepth(2, LevelTrace, format, args) }

// Debug logs at LevelDebug through the default logger.
func Debug(format string, args ...any) { Default().logDepth(2, LevelDebug, format, args) }

// Info logs at LevelInfo through the default logger.
func Info(format string, args ...any) { Default().logDepth(2, LevelInfo, format, args) }

// Warn logs at LevelWarn through the default logger.
func Warn(format string, args ...any) { Default().logDepth(2, LevelWarn, format, args) }

// Error logs at LevelError through the default logger.
func Error(format string, args ...any) { Default().logDepth(2, LevelError, format, args) }

// Crit logs at LevelCrit through the default logger.
func Crit(format string, args ...any) { Default().logDepth(2, LevelCrit, format, args) }

func (l *Logger) logDepth(skip int, level Level, format string, args []any) {
	if !l.Enabled(level) {
		return
	}
	fn, line := caller(skip + 1)
	l.Emit(level, fn, line, format, args...)
}

// caller returns the short function name and line skip frames up.
func caller(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "???", line
	}
	return shortFuncName(fn.Name()), line
}

// shortFuncName strips the import path and package name from a fully
// qualified function name: "example.com/a/b.(*T).Run" becomes "(*T).Run".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// scanInt parses a leading decimal integer the way "%d" scanning does:
// leading white space is skipped, an optional sign is accepted, trailing
// garbage is ignored.
func scanInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sinkLocks serializes writers that share a sink, across loggers.
var sinkLocks sync.Map // io.Writer -> *sync.Mutex

func lockFor(w io.Writer) *sync.Mutex {
	if !reflect.ValueOf(w).Comparable() {
		return new(sync.Mutex)
	}
	mu, _ := sinkLocks.LoadOrStore(w, new(sync.Mutex))
	return mu.(*sync.Mutex)
}
