package rpc

import (
	"encoding/json"
	"fmt"
)

// Codec names as negotiated from the Content-Type suffix. Both replace
// Connect's built-in protojson codecs.
const (
	codecName        = "json"
	codecNameCharset = "json; charset=utf-8"
)

// JSONCodec marshals plain Go structs with encoding/json.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return codecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty payload leaves msg at its
// zero value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

// jsonCharsetCodec serves requests sent as "application/json; charset=utf-8".
type jsonCharsetCodec struct {
	JSONCodec
}

func (jsonCharsetCodec) Name() string { return codecNameCharset }
