// Package robologv1 holds the wire messages of remote log transport,
// see chunk.proto.
package robologv1

//go:generate protoc -I ../.. --go_out=paths=source_relative:../.. robolog/v1/chunk.proto
