package dlog

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"queue not pow2", func(c *Config) { c.QueueSize = 300 }, false},
		{"queue zero", func(c *Config) { c.QueueSize = 0 }, false},
		{"zero interval", func(c *Config) { c.PollInterval = 0 }, false},
		{"small scratch", func(c *Config) { c.ScratchSize = 8 }, false},
		{"min scratch", func(c *Config) { c.ScratchSize = MaxNumberLen + maxColorLen + 1 }, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := NewConfig()
			conf.QueueSize = DefaultQueueSize
			conf.PollInterval = DefaultPollInterval
			tc.modify(conf)
			if tc.valid {
				require.NoError(t, conf.Validate())
			} else {
				require.Error(t, conf.Validate())
			}
		})
	}
}

func TestConfigLoadYAML(t *testing.T) {
	conf := NewConfig()
	err := conf.LoadYAML(strings.NewReader(`
queue_size: 64
poll_interval: 50ms
array_separator: ","
message_start: "["
message_stop: "]"
colors: false
`))
	require.NoError(t, err)
	require.Equal(t, 64, conf.QueueSize)
	require.Equal(t, 50*time.Millisecond, conf.PollInterval)
	require.Equal(t, Symbol(','), conf.ArraySeparator)
	require.Equal(t, Symbol('['), conf.MessageStart)
	require.Equal(t, Symbol(']'), conf.MessageStop)
	require.Equal(t, Symbol(' '), conf.LabelSeparator)
	require.False(t, conf.Colors)
	require.NoError(t, conf.Validate())

	l, r := newTestLogger(t, conf)
	l.MessageStart("M")
	ArrayDec(l, []uint8{1, 2})
	l.MessageStop("M")
	l.Flush()
	require.Equal(t, "[M 1,2 M]", r.String())
}

func TestConfigLoadYAMLErrors(t *testing.T) {
	testCases := []string{
		"unknown_key: 1\n",
		"array_separator: \"ab\"\n",
		"queue_size: many\n",
	}
	for _, doc := range testCases {
		require.Error(t, NewConfig().LoadYAML(strings.NewReader(doc)), doc)
	}
	require.NoError(t, NewConfig().LoadYAML(strings.NewReader("")))
}

func TestConfigLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue_size: 32\n"), 0644))
	conf := NewConfig()
	require.NoError(t, conf.LoadFile(path))
	require.Equal(t, 32, conf.QueueSize)
	require.Error(t, conf.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestSymbol(t *testing.T) {
	var s Symbol
	require.NoError(t, s.Set("|"))
	require.Equal(t, "|", s.String())
	var symErr *SymbolError
	require.ErrorAs(t, s.Set(""), &symErr)
	require.ErrorAs(t, s.Set("||"), &symErr)
	require.Equal(t, Symbol('|'), s)

	out, err := yaml.Marshal(struct {
		Sep Symbol `yaml:"sep"`
	}{Sep: 'x'})
	require.NoError(t, err)
	require.Equal(t, "sep: x\n", string(out))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&s, "sep", "")
	require.NoError(t, fs.Parse([]string{"-sep", "#"}))
	require.Equal(t, Symbol('#'), s)
}
