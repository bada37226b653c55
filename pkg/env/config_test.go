package env

import (
	"bytes"
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/robolog/pkg/backend/mqtt"
	"github.com/robotalks/robolog/pkg/backend/websocket"
	"github.com/robotalks/robolog/pkg/vcp"
)

func TestNewOutput(t *testing.T) {
	conf := NewConfig()
	conf.DeviceID = "dev1"

	conf.Output = OutputStdout
	var buf bytes.Buffer
	out, err := conf.NewOutput(&buf)
	require.NoError(t, err)
	port, ok := out.Backend.(*vcp.Port)
	require.True(t, ok)
	require.Len(t, out.Runners, 1)
	port.Write([]byte("x"))
	require.NoError(t, port.Flush())
	require.Equal(t, "x", buf.String())
	require.NoError(t, out.Close())

	conf.Output = OutputMQTT
	conf.MQTTURL = "mqtt://localhost:1883/robots/"
	out, err = conf.NewOutput(nil)
	require.NoError(t, err)
	sink, ok := out.Backend.(*mqtt.Sink)
	require.True(t, ok)
	require.Equal(t, "robots/dev1/log", sink.Topic)

	conf.MQTTURL = "mqtt://%zz"
	_, err = conf.NewOutput(nil)
	require.Error(t, err)

	conf.Output = OutputWS
	out, err = conf.NewOutput(nil)
	require.NoError(t, err)
	_, ok = out.Backend.(*websocket.Hub)
	require.True(t, ok)
	server, ok := out.Runners[0].(*websocket.Server)
	require.True(t, ok)
	require.Equal(t, "/log", server.Path)
	require.NoError(t, out.Close())

	conf.Output = "serial"
	_, err = conf.NewOutput(nil)
	require.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, IsTerminal(f))

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	require.True(t, IsTerminal(tty))
}
