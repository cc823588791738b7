// Package config loads tool settings from flags, EGGDROP_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/observe-l/eggdrop/internal/logging"
	"github.com/observe-l/eggdrop/locate"
)

// Keys shared by flags, environment and config file.
const (
	CfgConfigFile    = "config"
	CfgTotalSize     = "total"
	CfgCriticalValue = "critical"
	CfgAlpha         = "alpha"
	CfgMaxAttempts   = "max_attempts"
	CfgSeed          = "seed"
	CfgTrials        = "trials"
	CfgWorkers       = "workers"
	CfgAlphas        = "alphas"
	CfgReport        = "report"
	CfgTraceOut      = "trace_out"
	CfgLogLevel      = "log.level"
	CfgLogFormat     = "log.format"
	CfgListen        = "listen"
	CfgMetricsListen = "metrics_listen"
)

// Config is the resolved tool configuration.
type Config struct {
	TotalSize     int
	CriticalValue int
	Alpha         float64
	MaxAttempts   int
	Seed          int64
	Trials        int
	Workers       int
	Alphas        []float64
	Report        string
	TraceOut      string
	Log           LogConfig
	Listen        string
	MetricsListen string
}

type LogConfig struct {
	Level  string
	Format string
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("eggdrop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(CfgTotalSize, 100)
	v.SetDefault(CfgCriticalValue, 63)
	v.SetDefault(CfgAlpha, locate.DefaultAlpha)
	v.SetDefault(CfgMaxAttempts, locate.DefaultMaxAttempts)
	v.SetDefault(CfgSeed, int64(42))
	v.SetDefault(CfgTrials, 1000)
	v.SetDefault(CfgWorkers, 4)
	v.SetDefault(CfgAlphas, []float64{0, 0.1, 0.25, 0.5, 0.75})
	v.SetDefault(CfgLogLevel, "info")
	v.SetDefault(CfgLogFormat, "console")
	v.SetDefault(CfgListen, ":50051")
	v.SetDefault(CfgMetricsListen, ":9090")
	return v
}

// BindFlags binds every flag in fs whose name (with "-" mapped to "_") is a
// config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		errs = multierr.Append(errs, v.BindPFlag(key, f))
	})
	return errs
}

// Load resolves the configuration, reading the config file if one is set.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(CfgConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	alphas, err := floatSlice(v.Get(CfgAlphas))
	if err != nil {
		return nil, err
	}
	c := &Config{
		TotalSize:     v.GetInt(CfgTotalSize),
		CriticalValue: v.GetInt(CfgCriticalValue),
		Alpha:         v.GetFloat64(CfgAlpha),
		MaxAttempts:   v.GetInt(CfgMaxAttempts),
		Seed:          v.GetInt64(CfgSeed),
		Trials:        v.GetInt(CfgTrials),
		Workers:       v.GetInt(CfgWorkers),
		Alphas:        alphas,
		Report:        v.GetString(CfgReport),
		TraceOut:      v.GetString(CfgTraceOut),
		Log: LogConfig{
			Level:  v.GetString(CfgLogLevel),
			Format: v.GetString(CfgLogFormat),
		},
		Listen:        v.GetString(CfgListen),
		MetricsListen: v.GetString(CfgMetricsListen),
	}
	return c, nil
}

func floatSlice(raw interface{}) ([]float64, error) {
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case []float64:
		return x, nil
	case []interface{}:
		out := make([]float64, 0, len(x))
		for _, e := range x {
			f, err := toFloat(e)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	case []string:
		return parseFloats(x)
	case string:
		return parseFloats(strings.Split(x, ","))
	default:
		f, err := toFloat(x)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
}

func parseFloats(parts []string) ([]float64, error) {
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(p, "[]"))
		if p == "" {
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(p, "%g", &f); err != nil {
			return nil, fmt.Errorf("config: bad alpha %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func toFloat(e interface{}) (float64, error) {
	switch n := e.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		fs, err := parseFloats([]string{n})
		if err != nil || len(fs) != 1 {
			return 0, fmt.Errorf("config: bad alpha %q", n)
		}
		return fs[0], nil
	default:
		return 0, fmt.Errorf("config: bad alpha %v (%T)", e, e)
	}
}

func checkAlpha(name string, a float64) error {
	if err := locate.ValidateAlpha(a); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.TotalSize < 1 {
		errs = multierr.Append(errs, fmt.Errorf("total %d: %w", c.TotalSize, locate.ErrInvalidRange))
	} else if c.CriticalValue < 0 || c.CriticalValue > c.TotalSize {
		errs = multierr.Append(errs, fmt.Errorf("critical %d not in [0,%d]: %w", c.CriticalValue, c.TotalSize, locate.ErrCriticalValueOutOfBounds))
	}
	errs = multierr.Append(errs, checkAlpha("alpha", c.Alpha))
	for _, a := range c.Alphas {
		errs = multierr.Append(errs, checkAlpha("alphas entry", a))
	}
	if c.MaxAttempts < 1 {
		errs = multierr.Append(errs, fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts))
	}
	if c.Trials < 1 {
		errs = multierr.Append(errs, fmt.Errorf("trials must be positive, got %d", c.Trials))
	}
	if c.Workers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	var lvl logging.Level
	errs = multierr.Append(errs, lvl.Set(c.Log.Level))
	var f logging.Format
	errs = multierr.Append(errs, f.Set(c.Log.Format))
	return errs
}

// ErrNoListen is returned by ValidateServe when no RPC address is set.
var ErrNoListen = errors.New("config: listen address not set")

// ValidateServe checks the settings needed by the RPC server.
func (c *Config) ValidateServe() error {
	if c.Listen == "" {
		return ErrNoListen
	}
	return nil
}
