package mqtt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	proto "github.com/golang/protobuf/proto"
	"github.com/valyala/bytebufferpool"

	"github.com/robotalks/robolog/pkg/framework"
	robologv1 "github.com/robotalks/robolog/pkg/proto/robolog/v1"
)

// Sink defaults.
const (
	DefaultChunkSize    = 512
	DefaultInterval     = 200 * time.Millisecond
	DefaultFlushTimeout = 2 * time.Second
)

var (
	// ErrNotConnected indicates a chunk was dropped while disconnected.
	ErrNotConnected = errors.New("mqtt not connected")
	// ErrFlushTimeout indicates the broker did not acknowledge in time.
	ErrFlushTimeout = errors.New("mqtt flush timeout")
)

// Sink is a log backend batching writes into LogChunk messages.
// Write only copies into the current batch; publishing is asynchronous.
type Sink struct {
	Client       Client
	Topic        string
	DeviceID     string
	QoS          byte
	ChunkSize    int
	Interval     time.Duration
	FlushTimeout time.Duration

	lock    sync.Mutex
	batch   *bytebufferpool.ByteBuffer
	seq     uint64
	last    paho.Token
	dropped uint64
}

// NewSink creates a Sink publishing to the log topic of deviceID.
func NewSink(client Client, topicPrefix, deviceID string) *Sink {
	return &Sink{
		Client:       client,
		Topic:        DeviceTopic(topicPrefix, deviceID),
		DeviceID:     deviceID,
		ChunkSize:    DefaultChunkSize,
		Interval:     DefaultInterval,
		FlushTimeout: DefaultFlushTimeout,
	}
}

// Name implements framework.Named.
func (s *Sink) Name() string {
	return "mqtt-sink"
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.batch == nil {
		s.batch = bytebufferpool.Get()
	}
	s.batch.Write(p)
	if s.batch.Len() >= s.ChunkSize {
		if err := s.publishLocked(); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush publishes the pending batch and waits for the last publication.
func (s *Sink) Flush() error {
	s.lock.Lock()
	err := s.publishLocked()
	token := s.last
	s.lock.Unlock()
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	timeout := s.FlushTimeout
	if timeout <= 0 {
		timeout = DefaultFlushTimeout
	}
	if !token.WaitTimeout(timeout) {
		return ErrFlushTimeout
	}
	return token.Error()
}

// Dropped returns the number of chunks dropped while disconnected.
func (s *Sink) Dropped() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.dropped
}

// Run implements framework.Runnable. It connects the client and publishes
// partial batches every Interval until ctx is done. It does not disconnect,
// see Close.
func (s *Sink) Run(ctx context.Context) error {
	token := s.Client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	glog.Infof("publishing logs to %q", s.Topic)
	return framework.NewLoop(s.Name(), s.Interval, func(context.Context) error {
		s.lock.Lock()
		defer s.lock.Unlock()
		return s.publishLocked()
	}).Run(ctx)
}

// Close flushes and disconnects.
func (s *Sink) Close() error {
	err := s.Flush()
	s.Client.Disconnect(250)
	return err
}

func (s *Sink) publishLocked() error {
	batch := s.batch
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	s.batch = nil
	defer bytebufferpool.Put(batch)

	if !s.Client.IsConnected() {
		s.dropped++
		return ErrNotConnected
	}
	s.seq++
	payload, err := proto.Marshal(&robologv1.LogChunk{
		DeviceId: s.DeviceID,
		Seq:      s.seq,
		Data:     batch.B,
		SentAt:   time.Now().UnixNano(),
	})
	if err != nil {
		return err
	}
	glog.V(4).Infof("PUB %q seq=%d len=%d", s.Topic, s.seq, batch.Len())
	s.last = s.Client.Publish(s.Topic, s.QoS, false, payload)
	return nil
}
