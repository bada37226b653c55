package mqtt

import (
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	proto "github.com/golang/protobuf/proto"

	robologv1 "github.com/robotalks/robolog/pkg/proto/robolog/v1"
)

// ChunkHandler receives decoded chunks. lost is the number of chunks
// missing before this one, according to the device sequence.
type ChunkHandler func(chunk *robologv1.LogChunk, lost uint64)

// DecodeChunk decodes a LogChunk payload.
func DecodeChunk(payload []byte) (*robologv1.LogChunk, error) {
	chunk := &robologv1.LogChunk{}
	if err := proto.Unmarshal(payload, chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

// Monitor follows the logs of devices.
type Monitor struct {
	TopicPrefix string
	Handler     ChunkHandler

	lock sync.Mutex
	seqs map[string]uint64
}

// NewMonitor creates a Monitor.
func NewMonitor(topicPrefix string, handler ChunkHandler) *Monitor {
	return &Monitor{TopicPrefix: topicPrefix, Handler: handler}
}

// Pattern returns the subscription for deviceID, or all devices when empty.
func (m *Monitor) Pattern(deviceID string) string {
	if deviceID == "" {
		deviceID = "+"
	}
	return DeviceTopic(m.TopicPrefix, deviceID)
}

// Subscribe subscribes the client to the logs of deviceID, or of all
// devices when deviceID is empty.
func (m *Monitor) Subscribe(client Client, deviceID string) paho.Token {
	pattern := m.Pattern(deviceID)
	glog.V(2).Infof("SUB %q", pattern)
	return client.Subscribe(pattern, 0, m.HandleMessage)
}

// HandleMessage implements paho.MessageHandler.
func (m *Monitor) HandleMessage(_ paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, m.TopicPrefix) || !MatchTopic(topic, m.Pattern("")) {
		return
	}
	chunk, err := DecodeChunk(msg.Payload())
	if err != nil {
		glog.Warningf("bad chunk on %q: %v", topic, err)
		return
	}
	if chunk.DeviceId == "" {
		chunk.DeviceId = strings.TrimSuffix(topic[len(m.TopicPrefix):], "/"+LogTopic)
	}

	var lost uint64
	m.lock.Lock()
	if m.seqs == nil {
		m.seqs = make(map[string]uint64)
	}
	if prev, ok := m.seqs[chunk.DeviceId]; ok && chunk.Seq > prev+1 {
		lost = chunk.Seq - prev - 1
	}
	m.seqs[chunk.DeviceId] = chunk.Seq
	m.lock.Unlock()

	if m.Handler != nil {
		m.Handler(chunk, lost)
	}
}
