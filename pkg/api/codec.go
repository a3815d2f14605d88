// Package api defines the Connect RPC surface of mentorboard: message types,
// procedure names, and handler/client constructors for each service.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" name, so both handlers and clients must be built with WithJSON (the
// constructors here add it).
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const codecName = "json"

// jsonCodec marshals messages with encoding/json.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return codecName
}

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

// WithJSON registers the JSON codec on a handler or client.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
