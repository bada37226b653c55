package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/robolog/pkg/cli/sh"
	"github.com/robotalks/robolog/pkg/dlog"
	"github.com/robotalks/robolog/pkg/env"
	"github.com/robotalks/robolog/pkg/framework"
)

var autoDrain bool

func init() {
	dlog.SetupFlags()
	env.SetupFlags()
	flag.BoolVar(&autoDrain, "auto-drain", autoDrain, "Run the drain loop instead of draining on the drain/flush commands.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	out, err := env.Default().NewOutput(os.Stdout)
	if err != nil {
		glog.Fatal(err)
	}
	l := dlog.MustNew(dlog.Default(), out.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	runner := framework.NewRunnerWith(ctx)
	runner.Go(out.Runners...)
	if autoDrain {
		runner.Go(l)
	}

	shellErr := sh.New(l).Run(flag.Args()...)
	l.Flush()
	cancel()
	if err := runner.Wait(); err != nil {
		glog.Error(err)
	}
	if err := out.Close(); err != nil {
		glog.Warningf("close output: %v", err)
	}
	if shellErr != nil {
		glog.Fatal(shellErr)
	}
}
