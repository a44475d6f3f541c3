// Package rpc carries JSON-shaped payloads over gRPC using
// google.protobuf.Struct messages.
package rpc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBadRequest marks payloads that cannot be decoded into the expected shape.
var ErrBadRequest = errors.New("malformed request")

// Decode fills v from req using v's json tags. A nil req leaves v untouched.
func Decode(req *structpb.Struct, v any) error {
	if req == nil {
		return nil
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.Wrap(ErrBadRequest, err.Error())
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(ErrBadRequest, err.Error())
	}
	return nil
}

// Encode converts v, which must marshal to a JSON object, into a Struct.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "rpc: encode")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "rpc: encode")
	}
	return out, nil
}

// Invoke calls a unary method, encoding req and decoding the reply into resp.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}
	out := &structpb.Struct{}
	if err := conn.Invoke(ctx, method, in, out, opts...); err != nil {
		return err
	}
	return Decode(out, resp)
}
