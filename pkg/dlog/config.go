package dlog

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines the init-time settings of a Logger.
type Config struct {
	// QueueSize is the number of Items the queue holds, a power of two.
	QueueSize int `yaml:"queue_size"`
	// PollInterval is how long the drain loop idles between passes.
	PollInterval time.Duration `yaml:"poll_interval"`
	// ArraySeparator is placed between array elements by the typed array helpers.
	ArraySeparator Symbol `yaml:"array_separator"`
	// MessageStart opens a framed message.
	MessageStart Symbol `yaml:"message_start"`
	// MessageStop closes a framed message.
	MessageStop Symbol `yaml:"message_stop"`
	// LabelSeparator separates a message label from the body.
	LabelSeparator Symbol `yaml:"label_separator"`
	// Colors enables ANSI colors. When false, requested colors are ignored.
	Colors bool `yaml:"colors"`
	// OverflowNotice is written first in a pass that found the queue full.
	OverflowNotice string `yaml:"overflow_notice"`
	// ScratchSize is the size of the drain side staging buffer.
	ScratchSize int `yaml:"scratch_size"`
}

// Defaults.
const (
	DefaultQueueSize      = 256
	DefaultPollInterval   = 100 * time.Millisecond
	DefaultOverflowNotice = "\r\n[LOG OVERFLOW]\r\n"
	DefaultScratchSize    = 128
)

var defaultConfig = Config{
	QueueSize:      DefaultQueueSize,
	PollInterval:   DefaultPollInterval,
	ArraySeparator: ' ',
	MessageStart:   '<',
	MessageStop:    '>',
	LabelSeparator: ' ',
	Colors:         true,
	OverflowNotice: DefaultOverflowNotice,
	ScratchSize:    DefaultScratchSize,
}

func init() {
	if val := os.Getenv("ROBOLOG_QUEUE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			defaultConfig.QueueSize = n
		}
	}
	if val := os.Getenv("ROBOLOG_POLL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			defaultConfig.PollInterval = d
		}
	}
	if val := os.Getenv("ROBOLOG_COLORS"); val != "" {
		if en, err := strconv.ParseBool(val); err == nil {
			defaultConfig.Colors = en
		}
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.QueueSize, "log-queue", defaultConfig.QueueSize, "Log queue size in items, power of 2.")
	flag.DurationVar(&defaultConfig.PollInterval, "log-poll", defaultConfig.PollInterval, "Log drain poll interval.")
	flag.Var(&defaultConfig.ArraySeparator, "log-array-sep", "Separator between array elements.")
	flag.Var(&defaultConfig.MessageStart, "log-msg-start", "Message start symbol.")
	flag.Var(&defaultConfig.MessageStop, "log-msg-stop", "Message stop symbol.")
	flag.Var(&defaultConfig.LabelSeparator, "log-label-sep", "Message label separator.")
	flag.BoolVar(&defaultConfig.Colors, "log-colors", defaultConfig.Colors, "Enable ANSI colors.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the config.
func (c *Config) Validate() error {
	if !isPowerOfTwo(c.QueueSize) {
		return &CapacityError{Capacity: c.QueueSize}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	if c.ScratchSize < MaxNumberLen+maxColorLen+1 {
		return fmt.Errorf("scratch size %d too small", c.ScratchSize)
	}
	return nil
}

// LoadYAML overlays settings from a YAML document.
func (c *Config) LoadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return fmt.Errorf("decode log config: %w", err)
	}
	return nil
}

// LoadFile overlays settings from a YAML file.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.LoadYAML(f)
}

// Symbol is a single byte setting, written as a one character string in
// flags and YAML.
type Symbol byte

// String implements flag.Value.
func (s *Symbol) String() string {
	if s == nil {
		return ""
	}
	return string([]byte{byte(*s)})
}

// Set implements flag.Value.
func (s *Symbol) Set(val string) error {
	if len(val) != 1 {
		return &SymbolError{Value: val}
	}
	*s = Symbol(val[0])
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Symbol) UnmarshalYAML(node *yaml.Node) error {
	var val string
	if err := node.Decode(&val); err != nil {
		return err
	}
	return s.Set(val)
}

// MarshalYAML implements yaml.Marshaler.
func (s Symbol) MarshalYAML() (interface{}, error) {
	return string([]byte{byte(s)}), nil
}
