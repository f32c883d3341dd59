package bigint

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustParse parses a decimal literal or fails the test.
func mustParse(t testing.TB, s string) BigInt {
	t.Helper()
	v, err := FromString(s)
	require.NoError(t, err, "parse %q", s)
	return v
}

// randomDecimal returns a random decimal literal of up to maxDigits digits, possibly negative.
func randomDecimal(rng *rand.Rand, maxDigits int) string {
	n := 1 + rng.Intn(maxDigits)
	var b strings.Builder
	if rng.Intn(2) == 0 {
		b.WriteByte('-')
	}
	b.WriteByte(byte('1' + rng.Intn(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	return b.String()
}

// bigOf parses a decimal literal into a math/big integer.
func bigOf(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "math/big could not parse %q", s)
	return v
}
