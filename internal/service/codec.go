package service

import (
	"fmt"

	"github.com/francoispqt/gojay"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of Locator messages.
const CodecName = "gojay"

type codec struct{}

func init() { encoding.RegisterCodec(codec{}) }

func (codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(gojay.MarshalerJSONObject)
	if !ok {
		return nil, fmt.Errorf("service: %T is not a gojay object", v)
	}
	return gojay.MarshalJSONObject(m)
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	u, ok := v.(gojay.UnmarshalerJSONObject)
	if !ok {
		return fmt.Errorf("service: %T is not a gojay object", v)
	}
	return gojay.UnmarshalJSONObject(data, u)
}

func (codec) Name() string { return CodecName }
