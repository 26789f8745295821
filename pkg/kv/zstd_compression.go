package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// encode binary encode lalu zstd compress.
func encode[T any](v T) ([]byte, error) {
	bb, err := binary.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

func decode[T any](bbCompressed []byte) (T, error) {
	var v T
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return v, err
	}
	if err := binary.Unmarshal(bb, &v); err != nil {
		return v, err
	}
	return v, nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
