package env

import (
	"flag"
	"fmt"
	"io"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/term"

	"github.com/robotalks/robolog/pkg/backend/mqtt"
	"github.com/robotalks/robolog/pkg/backend/websocket"
	"github.com/robotalks/robolog/pkg/framework"
	"github.com/robotalks/robolog/pkg/vcp"
)

// Outputs.
const (
	OutputStdout = "stdout"
	OutputMQTT   = "mqtt"
	OutputWS     = "ws"
)

// Config selects where rendered logs go.
type Config struct {
	// Output is one of stdout, mqtt, ws.
	Output string
	// DeviceID names this device in remote outputs.
	DeviceID string
	// MQTTURL specifies the broker, e.g. mqtt://host:port/topic-prefix/
	MQTTURL string
	// WSAddr is the listen address of the websocket viewer endpoint.
	WSAddr string
	// VCPBufferSize is the stream buffer size of the stdout port.
	VCPBufferSize int
}

var defaultConfig = Config{
	Output:        OutputStdout,
	MQTTURL:       "mqtt://localhost:1883/robolog/",
	WSAddr:        "localhost:8070",
	VCPBufferSize: vcp.DefaultBufferSize,
}

func init() {
	if val := os.Getenv("ROBOLOG_OUTPUT"); val != "" {
		defaultConfig.Output = val
	}
	if val := os.Getenv("ROBOLOG_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("ROBOLOG_WS_ADDR"); val != "" {
		defaultConfig.WSAddr = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Output, "output", defaultConfig.Output, "Log output: stdout, mqtt or ws.")
	flag.StringVar(&defaultConfig.DeviceID, "device", defaultConfig.DeviceID, "Device ID, defaults to one derived from the machine ID.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.WSAddr, "ws", defaultConfig.WSAddr, "Websocket viewer listen address.")
	flag.IntVar(&defaultConfig.VCPBufferSize, "vcp-buffer", defaultConfig.VCPBufferSize, "Stdout port buffer size in bytes.")
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

// Output is a log backend with the runners that serve it.
type Output struct {
	Backend io.Writer
	Runners []framework.Runnable

	closers []io.Closer
}

// Close releases the output after the logger has been flushed.
func (o *Output) Close() error {
	var errs framework.AggregatedError
	for _, c := range o.closers {
		errs.Add(c.Close())
	}
	return errs.Aggregate()
}

// NewOutput creates the configured output. stdout is the sink of the
// stdout output.
func (c *Config) NewOutput(stdout io.Writer) (*Output, error) {
	deviceID := c.DeviceID
	if deviceID == "" {
		deviceID = DeviceID()
	}
	switch c.Output {
	case OutputStdout, "":
		port := vcp.NewPort(stdout, c.VCPBufferSize)
		return &Output{Backend: port, Runners: []framework.Runnable{port}}, nil
	case OutputMQTT:
		opts, prefix, err := mqtt.ClientOptionsFromURL(c.MQTTURL)
		if err != nil {
			return nil, fmt.Errorf("invalid MQTT URL: %w", err)
		}
		if opts.ClientID == "" {
			opts.SetClientID("robolog-" + deviceID)
		}
		sink := mqtt.NewSink(paho.NewClient(opts), prefix, deviceID)
		return &Output{
			Backend: sink,
			Runners: []framework.Runnable{sink},
			closers: []io.Closer{sink},
		}, nil
	case OutputWS:
		hub := websocket.NewHub()
		server := &websocket.Server{Addr: c.WSAddr, Path: "/log", Hub: hub}
		return &Output{
			Backend: hub,
			Runners: []framework.Runnable{server},
			closers: []io.Closer{hub},
		}, nil
	}
	return nil, fmt.Errorf("unknown output %q", c.Output)
}

// IsTerminal reports whether f is a terminal, where ANSI colors are useful.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
