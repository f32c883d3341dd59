package numtheory

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// edwards25519GroupOrder is the prime order L of the edwards25519 base point.
const edwards25519GroupOrder = "7237005577332262213973186563042994240857116359379907606001950938285454250989"

func num(t *testing.T, s string) bigint.BigInt {
	t.Helper()
	v, err := bigint.FromString(s)
	require.NoError(t, err)
	return v
}

func TestGCD(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"0", "0", "0"},
		{"0", "17", "17"},
		{"12", "18", "6"},
		{"-12", "18", "6"},
		{"-12", "-18", "6"},
		{"17", "5", "1"},
		{"123456789012345678901234567890", "987654321098765432109876543210", "9000000000900000000090"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GCD(num(t, tt.a), num(t, tt.b)).String(), "gcd(%s, %s)", tt.a, tt.b)
	}
}

func TestEGCD_Bezout(t *testing.T) {
	rng := mrand.New(mrand.NewSource(11))
	for i := 0; i < 200; i++ {
		a := bigint.FromInt64(rng.Int63n(1_000_000_000) - 500_000_000)
		b := bigint.FromInt64(rng.Int63n(1_000_000_000) - 500_000_000)

		g, x, y := EGCD(a, b)
		assert.Equal(t, GCD(a, b).String(), g.String())
		assert.True(t, a.Mul(x).Add(b.Mul(y)).Equal(g), "%s*%s + %s*%s != %s", a, x, b, y, g)
	}
}

func TestModInverse(t *testing.T) {
	inv, err := ModInverse(num(t, "5"), num(t, "24"))
	require.NoError(t, err)
	assert.Equal(t, "5", inv.String())

	inv, err = ModInverse(num(t, "85"), num(t, "268934988"))
	require.NoError(t, err)
	assert.Equal(t, "88590349", inv.String())

	inv, err = ModInverse(num(t, "-3"), num(t, "7"))
	require.NoError(t, err)
	assert.Equal(t, "2", inv.String())

	_, err = ModInverse(num(t, "6"), num(t, "9"))
	assert.ErrorIs(t, err, ErrNoInverse)

	_, err = ModInverse(num(t, "6"), bigint.Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
}

func TestModInverse_PrimeFieldOracle(t *testing.T) {
	n := bigint.FromBig(secp256k1.S256().Params().N)
	for i := 0; i < 20; i++ {
		a, err := bigint.RandomRange(rand.Reader, bigint.One(), n.Sub(bigint.One()))
		require.NoError(t, err)

		inv, err := ModInverse(a, n)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).ModInverse(a.Big(), n.Big()).String(), inv.String())

		prod, err := a.Mul(inv).Mod(n)
		require.NoError(t, err)
		assert.True(t, prod.Equal(bigint.One()))
	}
}

func TestIsPrime(t *testing.T) {
	primes := []string{"2", "3", "5", "97", "7919", "1000000007", "998244353", "2147483647"}
	composites := []string{"-7", "0", "1", "4", "9", "561", "41041", "1000000008"}

	for _, p := range primes {
		assert.True(t, IsPrime(num(t, p)), p)
	}
	for _, c := range composites {
		assert.False(t, IsPrime(num(t, c)), c)
	}
}

func TestIsPrime_MatchesMathBig(t *testing.T) {
	for v := int64(0); v < 3000; v++ {
		assert.Equal(t, big.NewInt(v).ProbablyPrime(0), IsPrime(bigint.FromInt64(v)), "%d", v)
	}
}

func TestProbablyPrime_KnownLargePrimes(t *testing.T) {
	curve := secp256k1.S256().Params()
	primes := []bigint.BigInt{
		bigint.FromBig(curve.N),
		bigint.FromBig(curve.P),
		num(t, edwards25519GroupOrder),
		num(t, "1000000007"),
	}
	for _, p := range primes {
		ok, err := ProbablyPrime(rand.Reader, p, 5)
		require.NoError(t, err)
		assert.True(t, ok, "%s", p)
	}

	composites := []bigint.BigInt{
		bigint.FromBig(curve.N).Mul(bigint.FromBig(curve.P)),
		bigint.FromBig(curve.P).Sub(bigint.One()),
		num(t, "998244353").Mul(num(t, "1000000007")),
		num(t, "825265"),
		num(t, "3215031751"),
	}
	for _, c := range composites {
		ok, err := ProbablyPrime(rand.Reader, c, 10)
		require.NoError(t, err)
		assert.False(t, ok, "%s", c)
	}
}

func TestProbablyPrime_MatchesMathBig(t *testing.T) {
	rng := mrand.New(mrand.NewSource(12))
	for i := 0; i < 200; i++ {
		v, err := bigint.RandomOdd(rng, 8+rng.Intn(20))
		require.NoError(t, err)
		ok, err := ProbablyPrime(rand.Reader, v, 20)
		require.NoError(t, err)
		assert.Equal(t, v.Big().ProbablyPrime(20), ok, "%s", v)
	}
}

func TestRoundsFor(t *testing.T) {
	assert.Equal(t, 20, RoundsFor(10))
	assert.Equal(t, 10, RoundsFor(25))
	assert.Equal(t, 3, RoundsFor(50))
	assert.Equal(t, 1, RoundsFor(75))
}

func TestRandomPrime(t *testing.T) {
	for _, digits := range []int{1, 2, 5, 12, 23} {
		p, err := RandomPrime(rand.Reader, digits)
		require.NoError(t, err)
		assert.Equal(t, digits, p.Len())
		assert.True(t, p.Big().ProbablyPrime(20), "%s", p)
	}

	_, err := RandomPrime(rand.Reader, 0)
	assert.ErrorIs(t, err, cryptoerr.ErrPolicyViolation)
}

func TestRandomCoprime(t *testing.T) {
	m := num(t, "2310")
	for i := 0; i < 50; i++ {
		c, err := RandomCoprime(rand.Reader, m)
		require.NoError(t, err)
		assert.True(t, IsCoprime(c, m))
		assert.True(t, c.GreaterOrEqual(bigint.Two()) && c.Less(m))
	}

	_, err := RandomCoprime(rand.Reader, bigint.Two())
	assert.ErrorIs(t, err, cryptoerr.ErrPolicyViolation)
}

func TestTrialDivision(t *testing.T) {
	d, err := TrialDivision(num(t, "268970693"), num(t, "10000"), num(t, "99999"))
	require.NoError(t, err)
	assert.Equal(t, "10799", d.String())

	d, err = TrialDivision(num(t, "35"), bigint.Zero(), num(t, "100"))
	require.NoError(t, err)
	assert.Equal(t, "5", d.String())

	_, err = TrialDivision(num(t, "19784619"), num(t, "1000"), num(t, "9999"))
	assert.ErrorIs(t, err, cryptoerr.ErrNotFactorable)

	n3 := num(t, "1000000007").Mul(num(t, "1000000009")).Mul(num(t, "1000003"))
	d, err = TrialDivision(n3, num(t, "999990"), num(t, "1000010"))
	require.NoError(t, err)
	assert.Equal(t, "1000003", d.String())
}

func TestPrimeFactors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"1", nil},
		{"2", []string{"2"}},
		{"360", []string{"2", "2", "2", "3", "3", "5"}},
		{"19784619", []string{"3", "3", "2198291"}},
		{"268970693", []string{"10799", "24907"}},
		{"18446744073709551617", []string{"274177", "67280421310721"}},
	}
	for _, tt := range tests {
		got, err := PrimeFactors(num(t, tt.in))
		require.NoError(t, err)
		var s []string
		for _, f := range got {
			s = append(s, f.String())
		}
		assert.Equal(t, tt.want, s, tt.in)
	}

	pow2, err := PrimeFactors(num(t, "36893488147419103232"))
	require.NoError(t, err)
	require.Len(t, pow2, 65)
	for _, f := range pow2 {
		assert.Equal(t, "2", f.String())
	}

	_, err = PrimeFactors(bigint.Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrPolicyViolation)
}

func TestDivisors(t *testing.T) {
	got, err := Divisors(num(t, "60"))
	require.NoError(t, err)
	var s []string
	for _, d := range got {
		s = append(s, d.String())
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "10", "12", "15", "20", "30", "60"}, s)

	got, err = Divisors(bigint.One())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPrimitiveRoots(t *testing.T) {
	// The primitive roots of 13 are 2, 6, 7 and 11.
	p := num(t, "13")
	roots := map[int64]bool{2: true, 6: true, 7: true, 11: true}
	for g := int64(0); g < 14; g++ {
		ok, err := IsPrimitiveRoot(bigint.FromInt64(g), p)
		require.NoError(t, err)
		assert.Equal(t, roots[g], ok, "g=%d", g)
	}

	for i := 0; i < 20; i++ {
		g, err := PrimitiveRoot(rand.Reader, p)
		require.NoError(t, err)
		v, _ := g.Int64()
		assert.True(t, roots[v], "got %s", g)
	}

	g, err := PrimitiveRoot(rand.Reader, num(t, "1000000007"))
	require.NoError(t, err)
	ok, err := IsPrimitiveRoot(g, num(t, "1000000007"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = PrimitiveRoot(rand.Reader, bigint.One())
	assert.ErrorIs(t, err, cryptoerr.ErrPolicyViolation)
}
