package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stableswap/ssamm/safearith"
)

func TestTokenRatesProRata(t *testing.T) {
	c, err := New(safearith.Widen(1000), safearith.Widen(5000), safearith.Widen(9000))
	require.NoError(t, err)

	a, err := c.TokenARate(safearith.Widen(100))
	require.NoError(t, err)
	got, err := safearith.Narrow(a)
	require.NoError(t, err)
	require.Equal(t, uint64(500), got)

	b, err := c.TokenBRate(safearith.Widen(100))
	require.NoError(t, err)
	got, err = safearith.Narrow(b)
	require.NoError(t, err)
	require.Equal(t, uint64(900), got)
}

func TestNewRejectsZeroSupply(t *testing.T) {
	_, err := New(safearith.Zero(), safearith.Widen(5000), safearith.Widen(9000))
	require.ErrorIs(t, err, ErrCalculationFailure)
}

func TestWithdrawAllSharesReturnsFullReserves(t *testing.T) {
	c, err := New(safearith.Widen(764), safearith.Widen(1100), safearith.Widen(9900))
	require.NoError(t, err)

	a, err := c.TokenARate(safearith.Widen(764))
	require.NoError(t, err)
	got, err := safearith.Narrow(a)
	require.NoError(t, err)
	require.Equal(t, uint64(1100), got)

	b, err := c.TokenBRate(safearith.Widen(764))
	require.NoError(t, err)
	got, err = safearith.Narrow(b)
	require.NoError(t, err)
	require.Equal(t, uint64(9900), got)
}
