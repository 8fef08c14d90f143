// Package x_log wires zerolog with styled console output and rotating
// file output.
package x_log

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

//---------------------
// GLOBALS
//---------------------

var (
	mu      sync.Mutex
	current = defaultConfig
	fileOut *lumberjack.Logger
)

//---------------------
// INITIALIZATION
//---------------------

// Init configures the global logger from LoadConfig("").
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		c := defaultConfig
		cfg = &c
	}
	InitWithConfig(cfg, "")
}

// InitWithConfig configures the global zerolog logger. A non-empty module
// is attached to every record.
func InitWithConfig(cfg *Config, module string) {
	c := *cfg
	ApplyDefaults(&c)

	mu.Lock()
	defer mu.Unlock()

	if fileOut != nil {
		_ = fileOut.Close()
		fileOut = nil
	}
	current = c

	zerolog.SetGlobalLevel(ParseLevel(c.Level))
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000Z07:00"

	ctx := zerolog.New(buildWriter(c)).With().Timestamp()
	if module != "" {
		ctx = ctx.Str("module", module)
	}
	log.Logger = ctx.Logger()
}

// buildWriter fans out to console and rotating file as configured.
func buildWriter(c Config) io.Writer {
	var writers []io.Writer

	if c.ToConsole {
		styles := DefaultStylesByName(c.Style)
		styles.Out = os.Stderr
		cw := ConsoleWriterWithStyles(styles)
		cw.NoColor = !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
		writers = append(writers, cw)
	}

	if c.ToFile {
		fileOut = &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		if c.ColoredFile {
			styles := DefaultStylesByName(c.Style)
			styles.Out = fileOut
			writers = append(writers, ConsoleWriterWithStyles(styles))
		} else {
			writers = append(writers, fileOut)
		}
	}

	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	}
	return zerolog.MultiLevelWriter(writers...)
}

// ParseLevel maps a level name to zerolog, falling back to info.
func ParseLevel(s string) zerolog.Level {
	if strings.EqualFold(s, "warning") {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Current returns the config the global logger was built from.
func Current() Config {
	mu.Lock()
	defer mu.Unlock()
	return current
}

//---------------------
// SCOPED LOGGERS
//---------------------

// New returns a child of the global logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// From returns the logger stored in ctx, or the global one.
func From(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &log.Logger
}

//---------------------
// SHORTCUTS
//---------------------

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }

//---------------------
// FILE TAIL
//---------------------

// Tail returns the last n lines of the configured log file.
func Tail(filename string, n int) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return lines, err
	}

	if n >= 0 && len(lines) > n {
		return lines[len(lines)-n:], nil
	}
	return lines, nil
}
