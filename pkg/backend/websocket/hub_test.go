package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/robolog/pkg/dlog"
)

func dialHub(t *testing.T, h *Hub) (*Conn, func()) {
	server := httptest.NewServer(h.Handler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, err := websocket.Dial(url, "", server.URL)
	require.NoError(t, err)
	return Wrap(ws), func() {
		ws.Close()
		server.Close()
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	n, err := h.Write([]byte("nobody listens"))
	require.NoError(t, err)
	require.Equal(t, 14, n)

	c1, done1 := dialHub(t, h)
	defer done1()
	c2, done2 := dialHub(t, h)
	defer done2()
	require.Eventually(t, func() bool { return h.Viewers() == 2 }, time.Second, time.Millisecond)

	buf := []byte("hello")
	h.Write(buf)
	copy(buf, "XXXXX")
	for _, c := range []*Conn{c1, c2} {
		chunk, err := c.ReadChunk()
		require.NoError(t, err)
		require.Equal(t, "hello", string(chunk))
	}

	c1.Close()
	require.Eventually(t, func() bool { return h.Viewers() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, h.Close())
	require.Zero(t, h.Viewers())
	_, err = c2.ReadChunk()
	require.Error(t, err)
}

func TestHubSlowViewer(t *testing.T) {
	h := &Hub{Backlog: 1}
	v := h.add()
	h.Write([]byte("a"))
	h.Write([]byte("b"))
	h.Write([]byte("c"))
	require.Equal(t, uint64(2), h.Dropped())
	require.Equal(t, "a", string(<-v.ch))
	h.remove(v)
	h.remove(v)
	require.Zero(t, h.Viewers())
}

func TestHubAsLogBackend(t *testing.T) {
	h := NewHub()
	c, done := dialHub(t, h)
	defer done()
	require.Eventually(t, func() bool { return h.Viewers() == 1 }, time.Second, time.Millisecond)

	conf := dlog.NewConfig()
	conf.Colors = true
	l, err := dlog.New(conf, h)
	require.NoError(t, err)
	l.Str("live", dlog.ColorGreen)
	l.Flush()

	chunk, err := c.ReadChunk()
	require.NoError(t, err)
	require.Equal(t, "\x1b[32mlive", string(chunk))
}
