package bigint

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

func TestQuoRem_AgainstMathBig(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		as, bs := randomDecimal(rng, 80), randomDecimal(rng, 40)
		a, b := mustParse(t, as), mustParse(t, bs)

		q, r, err := a.QuoRem(b)
		require.NoError(t, err)
		wq, wr := new(big.Int).QuoRem(bigOf(t, as), bigOf(t, bs), new(big.Int))
		assert.Equal(t, wq.String(), q.String(), "%s quo %s", as, bs)
		assert.Equal(t, wr.String(), r.String(), "%s rem %s", as, bs)

		dq, dm, err := a.DivMod(b)
		require.NoError(t, err)
		wq, wm := new(big.Int).DivMod(bigOf(t, as), bigOf(t, bs), new(big.Int))
		assert.Equal(t, wq.String(), dq.String(), "%s div %s", as, bs)
		assert.Equal(t, wm.String(), dm.String(), "%s mod %s", as, bs)
	}
}

func TestDivision_LongDivisors(t *testing.T) {
	// Divisors longer than the native estimate window exercise the correction step.
	tests := []struct{ a, b string }{
		{
			"4379853178597859156740573149857154310578942357435678165781568134756871356187956143975358713583915634785431658143560178536107563147805634807561348506134",
			"7142756019471983982475239851587182390573438756286598175918",
		},
		{
			"-7846518746531895729834723194263984236421304673218561384612384623198412894123506123859123452319048712958714309584104712340823408213842130948",
			"-3714856173245610358671095834519578134957135871390587314982",
		},
		{"99999999999999999999999999999999999999", "99999999999999999999"},
		{"100000000000000000000000000000000000000", "10000000000000000001"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"123456789012345678901234567889", "123456789012345678901234567890"},
	}

	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)
		q, m, err := a.DivMod(b)
		require.NoError(t, err)
		wq, wm := new(big.Int).DivMod(bigOf(t, tt.a), bigOf(t, tt.b), new(big.Int))
		assert.Equal(t, wq.String(), q.String())
		assert.Equal(t, wm.String(), m.String())
	}
}

func TestDivision_Signs(t *testing.T) {
	tests := []struct {
		a, b             string
		quo, rem         string
		div, mod         string
	}{
		{"7", "2", "3", "1", "3", "1"},
		{"-7", "2", "-3", "-1", "-4", "1"},
		{"7", "-2", "-3", "1", "-3", "1"},
		{"-7", "-2", "3", "-1", "4", "1"},
		{"-6", "3", "-2", "0", "-2", "0"},
		{"0", "-5", "0", "0", "0", "0"},
		{"3", "10", "0", "3", "0", "3"},
		{"-3", "10", "0", "-3", "-1", "7"},
	}

	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)
		q, r, err := a.QuoRem(b)
		require.NoError(t, err)
		assert.Equal(t, tt.quo, q.String(), "%s quo %s", tt.a, tt.b)
		assert.Equal(t, tt.rem, r.String(), "%s rem %s", tt.a, tt.b)

		d, m, err := a.DivMod(b)
		require.NoError(t, err)
		assert.Equal(t, tt.div, d.String(), "%s div %s", tt.a, tt.b)
		assert.Equal(t, tt.mod, m.String(), "%s mod %s", tt.a, tt.b)
	}
}

func TestDivisionByZero(t *testing.T) {
	a := mustParse(t, "12345")
	_, err := a.Quo(Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
	_, err = a.Rem(Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
	_, err = a.Div(Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
	_, err = a.Mod(Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
	_, err = a.ModPow(One(), Zero())
	assert.ErrorIs(t, err, cryptoerr.ErrDivisionByZero)
}
