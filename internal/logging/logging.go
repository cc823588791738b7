// Package logging builds the zap loggers used by the eggdrop tools and
// adapts them to probe tracing.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/observe-l/eggdrop/locate"
)

var (
	_ pflag.Value = (*Level)(nil)
	_ pflag.Value = (*Format)(nil)
)

// Level is a log level.
type Level zapcore.Level

const (
	LevelDebug = Level(zapcore.DebugLevel)
	LevelInfo  = Level(zapcore.InfoLevel)
	LevelWarn  = Level(zapcore.WarnLevel)
	LevelError = Level(zapcore.ErrorLevel)
)

func (l *Level) String() string { return zapcore.Level(*l).String() }

// Set sets the Level to the value specified by the provided string.
func (l *Level) Set(s string) error {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return fmt.Errorf("logging: invalid log level: '%s'", s)
	}
	switch zl {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
	default:
		return fmt.Errorf("logging: unsupported log level: '%s'", s)
	}
	*l = Level(zl)
	return nil
}

func (l *Level) Type() string { return "[debug,info,warn,error]" }

// Format is a log encoding.
type Format uint8

const (
	FmtConsole Format = iota
	FmtJSON
)

func (f *Format) String() string {
	switch *f {
	case FmtConsole:
		return "console"
	case FmtJSON:
		return "json"
	default:
		panic("logging: unsupported format")
	}
}

// Set sets the Format to the value specified by the provided string.
func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "console":
		*f = FmtConsole
	case "json":
		*f = FmtJSON
	default:
		return fmt.Errorf("logging: invalid log format: '%s'", s)
	}
	return nil
}

func (f *Format) Type() string { return "[console,json]" }

// New returns a logger writing to w at the given level.
func New(level Level, format Format, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch format {
	case FmtJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zapcore.Level(level))
	return zap.New(core)
}

// Parse builds a logger from textual level and format settings.
func Parse(level, format string, w io.Writer) (*zap.Logger, error) {
	var (
		l Level
		f Format
	)
	if err := l.Set(level); err != nil {
		return nil, err
	}
	if err := f.Set(format); err != nil {
		return nil, err
	}
	return New(l, f, w), nil
}

type probeLogger struct {
	log *zap.Logger
}

// ProbeLogger returns an observer that logs each probe at debug level.
func ProbeLogger(log *zap.Logger) locate.Observer {
	return probeLogger{log: log}
}

func (p probeLogger) OnProbe(pr locate.Probe) {
	if ce := p.log.Check(zapcore.DebugLevel, "probe"); ce != nil {
		ce.Write(
			zap.String("variant", string(pr.Variant)),
			zap.Int("attempt", pr.Attempt),
			zap.Int("position", pr.Position),
			zap.Int("low", pr.Range.Low),
			zap.Int("high", pr.Range.High),
			zap.Bool("broke", pr.Broke),
			zap.Bool("false_break", pr.FalseBreak),
		)
	}
}
