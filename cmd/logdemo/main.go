package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/robolog/pkg/dlog"
	"github.com/robotalks/robolog/pkg/env"
	"github.com/robotalks/robolog/pkg/framework"
)

var (
	configFile string
	period     = 500 * time.Millisecond
	tick       = time.Second
)

func init() {
	dlog.SetupFlags()
	env.SetupFlags()
	flag.StringVar(&configFile, "log-config", configFile, "YAML log config file.")
	flag.DurationVar(&period, "period", period, "Demo round period.")
	flag.DurationVar(&tick, "tick", tick, "Periodic producer interval, 0 to disable.")
}

func colorsExplicit() bool {
	explicit := os.Getenv("ROBOLOG_COLORS") != ""
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "log-colors" {
			explicit = true
		}
	})
	return explicit
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := dlog.NewConfig()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			glog.Fatalf("load %s: %v", configFile, err)
		}
	}
	outConf := env.Default()
	if !colorsExplicit() && (outConf.Output == env.OutputStdout || outConf.Output == "") {
		conf.Colors = env.IsTerminal(os.Stdout)
	}

	out, err := outConf.NewOutput(os.Stdout)
	if err != nil {
		glog.Fatal(err)
	}
	l := dlog.MustNew(conf, out.Backend)

	runner := framework.NewRunner().HandleSignals()
	runner.Finally(func() {
		if err := out.Close(); err != nil {
			glog.Warningf("close output: %v", err)
		}
	})
	runner.Go(out.Runners...)
	runner.Go(l, framework.NewLoop("demo", period, demoStep(l)))
	if tick > 0 {
		runner.Go(framework.NewLoop("tick", tick, tickStep(l)))
	}
	if err := runner.Wait(); err != nil {
		glog.Error(err)
		os.Exit(1)
	}
}
