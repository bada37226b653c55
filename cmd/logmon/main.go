package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"io"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/robolog/pkg/backend/mqtt"
	ws "github.com/robotalks/robolog/pkg/backend/websocket"
	robologv1 "github.com/robotalks/robolog/pkg/proto/robolog/v1"
)

var (
	mqttURL = "mqtt://localhost:1883/robolog/"
	wsURL   string
	device  string
)

func init() {
	if val := os.Getenv("ROBOLOG_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&wsURL, "ws", wsURL, "Websocket viewer URL, e.g. ws://host:8070/log, instead of MQTT.")
	flag.StringVar(&device, "device", device, "Only show this device.")
}

// chunkPrinter prefixes output with the device when following several.
func chunkPrinter(w io.Writer, prefixed bool) mqtt.ChunkHandler {
	return func(chunk *robologv1.LogChunk, lost uint64) {
		if lost > 0 {
			fmt.Fprintf(w, "\r\n[%s: %d chunks lost]\r\n", chunk.DeviceId, lost)
		}
		if prefixed {
			fmt.Fprintf(w, "[%s] ", chunk.DeviceId)
		}
		w.Write(chunk.Data)
	}
}

func followWS(w io.Writer) error {
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	if err != nil {
		return err
	}
	c := ws.Wrap(conn)
	defer c.Close()
	for {
		chunk, err := c.ReadChunk()
		if err != nil {
			return err
		}
		w.Write(chunk)
	}
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if wsURL != "" {
		if err := followWS(os.Stdout); err != nil && err != io.EOF {
			glog.Fatal(err)
		}
		return
	}

	opts, prefix, err := mqtt.ClientOptionsFromURL(mqttURL)
	if err != nil {
		glog.Fatal(err)
	}
	monitor := mqtt.NewMonitor(prefix, chunkPrinter(os.Stdout, device == ""))
	opts.SetOnConnectHandler(func(c paho.Client) {
		glog.Info("connected")
		monitor.Subscribe(c, device)
	})
	opts.SetConnectionLostHandler(func(c paho.Client, err error) {
		glog.Warningf("connection lost: %v", err)
	})
	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		glog.Fatal(token.Error())
	}
	<-(chan struct{})(nil)
}
