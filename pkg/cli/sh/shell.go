// Package sh provides an interactive shell feeding a deferred logger.
package sh

import (
	"errors"
	"flag"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/robolog/pkg/dlog"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Logger *dlog.Logger
}

const (
	shellKey = "$shell"
	prompt   = "log > "
)

var (
	evalOnly bool

	errNoCommand = errors.New("command expected")
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell producing into l.
func New(l *dlog.Logger) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Logger:      l,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range Commands() {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run runs a single command from args, or the interactive shell.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return errNoCommand
}

// logFunc wraps a command that enqueues into the logger. Enqueue failures
// are reported as a full queue.
func logFunc(fn func(l *dlog.Logger, args []string, color dlog.Color) (bool, error)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		args, color, err := SplitColor(c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		ok, err := fn(ShellFrom(c).Logger, args, color)
		if err != nil {
			c.Err(err)
			return
		}
		if !ok {
			c.Err(fmt.Errorf("queue full"))
		}
	}
}
