package rsablock

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

const (
	// BlockSize is the number of plaintext bytes encrypted per block.
	BlockSize = 16
	// Delimiter separates serialized blocks. Digit bytes are 0..9, so it never collides.
	Delimiter byte = 0xFF
)

// pad applies PKCS#7 padding. A full block is added when data is already aligned.
func pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: %d bytes is not a whole number of blocks", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > BlockSize {
		return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: invalid padding length %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.Wrap(cryptoerr.ErrParse, "rsablock: inconsistent padding bytes")
		}
	}
	return data[:len(data)-n], nil
}

// encodeBlocks serializes each value as little-endian digit bytes and joins them with Delimiter.
func encodeBlocks(blocks []bigint.BigInt) []byte {
	var buf bytes.Buffer
	for i, b := range blocks {
		if i > 0 {
			buf.WriteByte(Delimiter)
		}
		if b.IsZero() {
			buf.WriteByte(0)
			continue
		}
		buf.Write(b.Digits())
	}
	return buf.Bytes()
}

// decodeBlocks reverses encodeBlocks.
func decodeBlocks(data []byte) ([]bigint.BigInt, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(cryptoerr.ErrParse, "rsablock: empty ciphertext")
	}
	parts := bytes.Split(data, []byte{Delimiter})
	out := make([]bigint.BigInt, 0, len(parts))
	for i, part := range parts {
		if len(part) == 0 {
			return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: block %d is empty", i)
		}
		v, err := bigint.FromDigits(part, bigint.SignPositive)
		if err != nil {
			return nil, errors.WithMessagef(err, "rsablock: block %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// blockBytes writes m into a BlockSize-byte big-endian buffer.
func blockBytes(m bigint.BigInt) ([]byte, error) {
	b := m.Bytes()
	if len(b) > BlockSize {
		return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: decrypted block %s exceeds 128 bits", m)
	}
	out := make([]byte, BlockSize)
	copy(out[BlockSize-len(b):], b)
	return out, nil
}
