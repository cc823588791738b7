package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/observe-l/eggdrop/internal/config"
	"github.com/observe-l/eggdrop/internal/logging"
	"github.com/observe-l/eggdrop/locate"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	log    *zap.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: out, errOut: errOut}
	root := &cobra.Command{
		Use:               "eggdrop",
		Short:             "Egg-drop critical value search, deterministic and stochastic",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.String(config.CfgConfigFile, "", "config file (yaml, json or toml)")
	pf.String(config.CfgLogLevel, "info", "log level [debug,info,warn,error]")
	pf.String(config.CfgLogFormat, "console", "log format [console,json]")

	root.AddCommand(
		a.binaryCmd(),
		a.stochasticCmd(),
		a.demoCmd(),
		a.evalCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	err := multierr.Combine(
		config.BindFlags(a.v, cmd.Flags()),
		config.BindFlags(a.v, cmd.InheritedFlags()),
	)
	if err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.Parse(cfg.Log.Level, cfg.Log.Format, a.errOut)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// probeObserver returns the text tracer plus a debug probe logger.
func (a *app) probeObserver(w io.Writer) locate.Observer {
	return locate.Observers{newTextTracer(w), logging.ProbeLogger(a.log)}
}

func rangeFlags(fs *pflag.FlagSet) {
	fs.Int(config.CfgTotalSize, 100, "number of positions, probed as 1..total")
	fs.Int(config.CfgCriticalValue, 63, "highest surviving position (0: breaks everywhere)")
}

func stochasticFlags(fs *pflag.FlagSet) {
	fs.Float64(config.CfgAlpha, locate.DefaultAlpha, "probability that a probe at or below the critical value is reported as a break")
	fs.Int64(config.CfgSeed, 42, "random seed")
	fs.Int("max-attempts", locate.DefaultMaxAttempts, "attempt budget of a stochastic search")
}
