// Package compress wraps the block payload compression primitive.
//
// The storage engine treats compression as an opaque transform; everything
// else only cares that Decompress(Compress(b), len(b)) == b.
package compress

import (
	"github.com/golang/snappy"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// Compress compresses raw into a freshly allocated buffer.
func Compress(raw []byte) []byte {
	return snappy.Encode(nil, raw)
}

// Decompress decompresses raw into a freshly allocated buffer. When
// expectedLen is non-negative the decoded length must match it exactly;
// a shorter or longer result means the block is corrupt.
func Decompress(raw []byte, expectedLen int) ([]byte, error) {
	out, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, errors.NewTracer(errors.BlockDecompressError).Wrap(err)
	}
	if expectedLen >= 0 && len(out) != expectedLen {
		return nil, errors.NewTracer(errors.BlockDecompressError)
	}
	return out, nil
}
