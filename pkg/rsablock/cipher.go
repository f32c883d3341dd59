package rsablock

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// Encrypt pads plaintext, encrypts it block by block with the key and returns the hex encoded
// ciphertext. The key is validated first, so a short or prime modulus fails with
// cryptoerr.ErrPolicyViolation before any block is processed.
func Encrypt(plaintext []byte, key Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	padded := pad(plaintext)
	blocks := make([]bigint.BigInt, 0, len(padded)/BlockSize)
	for off := 0; off < len(padded); off += BlockSize {
		m := bigint.FromBytes(padded[off : off+BlockSize])
		c, err := m.ModPow(key.Exponent, key.Modulus)
		if err != nil {
			return "", errors.Wrapf(err, "rsablock: encrypting block %d", off/BlockSize)
		}
		blocks = append(blocks, c)
	}
	return hex.EncodeToString(encodeBlocks(blocks)), nil
}

// Decrypt reverses Encrypt. Malformed hex, empty or non-digit blocks, blocks not below the
// modulus, results wider than 128 bits and broken padding all fail with cryptoerr.ErrParse.
func Decrypt(ciphertext string, key Key) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: decoding hex: %v", err)
	}
	blocks, err := decodeBlocks(raw)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(blocks)*BlockSize)
	for i, c := range blocks {
		if c.GreaterOrEqual(key.Modulus) {
			return nil, errors.Wrapf(cryptoerr.ErrParse, "rsablock: block %d is not below the modulus", i)
		}
		m, err := c.ModPow(key.Exponent, key.Modulus)
		if err != nil {
			return nil, errors.Wrapf(err, "rsablock: decrypting block %d", i)
		}
		b, err := blockBytes(m)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return unpad(out)
}
