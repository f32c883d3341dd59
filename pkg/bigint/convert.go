package bigint

import (
	"math/big"
)

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) BigInt {
	var acc []byte
	for _, v := range b {
		acc = addSmall(mulSmall(acc, 256), uint64(v))
	}
	return newBigInt(acc, SignPositive)
}

// Bytes returns |x| as a big-endian byte slice with no leading zero bytes. Zero yields
// an empty slice.
func (x BigInt) Bytes() []byte {
	var le []byte
	cur := x.digits
	for len(cur) > 0 {
		var r uint64
		cur, r = divSmall(cur, 256)
		le = append(le, byte(r))
	}
	out := make([]byte, len(le))
	for i, v := range le {
		out[len(le)-1-i] = v
	}
	return out
}

// Uint64 returns |x| as a uint64 and whether it fits.
func (x BigInt) Uint64() (uint64, bool) {
	if len(x.digits) > 20 {
		return 0, false
	}
	var v uint64
	for i := len(x.digits) - 1; i >= 0; i-- {
		d := uint64(x.digits[i])
		if v > (^uint64(0)-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// Int64 returns x as an int64 and whether it fits.
func (x BigInt) Int64() (int64, bool) {
	u, ok := x.Uint64()
	if !ok {
		return 0, false
	}
	if x.sign == SignNegative {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u - 1) - 1, true
	}
	if u > 1<<63-1 {
		return 0, false
	}
	return int64(u), true
}

// FromBig converts a math/big integer.
func FromBig(v *big.Int) BigInt {
	// big.Int.String always yields a valid decimal literal.
	out, _ := FromString(v.String())
	return out
}

// Big converts x to a math/big integer.
func (x BigInt) Big() *big.Int {
	out, _ := new(big.Int).SetString(x.String(), 10)
	return out
}
