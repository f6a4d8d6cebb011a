package grpcadapter

import (
	"fmt"

	"github.com/feature-mesh/targeting/jsonenc"
)

// jsonCodec implements google.golang.org/grpc/encoding.Codec over
// jsonenc instead of protobuf wire format. Registering it as the
// "proto" codec lets a hand-written grpc.ServiceDesc run without any
// .proto-generated marshaling code, which protobuf codegen being out
// of scope rules out.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := jsonenc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpcadapter: marshaling %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := jsonenc.Unmarshal(data, v); err != nil {
		return fmt.Errorf("grpcadapter: unmarshaling into %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return "proto" }
