package robologv1

import (
	"testing"

	"github.com/golang/protobuf/descriptor"
	proto "github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"
)

func TestLogChunkWire(t *testing.T) {
	chunk := &LogChunk{DeviceId: "dev", Seq: 300, Data: []byte("abc"), SentAt: 1}
	b, err := proto.Marshal(chunk)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0a, 0x03, 'd', 'e', 'v',
		0x10, 0xac, 0x02,
		0x1a, 0x03, 'a', 'b', 'c',
		0x20, 0x01,
	}, b)

	var decoded LogChunk
	require.NoError(t, proto.Unmarshal(b, &decoded))
	require.Equal(t, "dev", decoded.GetDeviceId())
	require.Equal(t, uint64(300), decoded.GetSeq())
	require.Equal(t, []byte("abc"), decoded.GetData())
	require.Equal(t, int64(1), decoded.GetSentAt())

	var nilChunk *LogChunk
	require.Empty(t, nilChunk.GetDeviceId())
	require.Nil(t, nilChunk.GetData())
}

func TestLogChunkDescriptor(t *testing.T) {
	require.NotNil(t, proto.FileDescriptor("robolog/v1/chunk.proto"))
	fd, md := descriptor.ForMessage(&LogChunk{})
	require.Equal(t, "robolog/v1/chunk.proto", fd.GetName())
	require.Equal(t, "robolog.v1", fd.GetPackage())
	require.Equal(t, "proto3", fd.GetSyntax())
	require.Equal(t, "github.com/robotalks/robolog/pkg/proto/robolog/v1;robologv1", fd.GetOptions().GetGoPackage())
	require.Equal(t, "LogChunk", md.GetName())
	var names []string
	for _, field := range md.GetField() {
		names = append(names, field.GetName())
	}
	require.Equal(t, []string{"device_id", "seq", "data", "sent_at"}, names)
	require.Equal(t, "robolog.v1.LogChunk", proto.MessageName(&LogChunk{}))
}
