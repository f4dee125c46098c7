package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/stableswap/ssamm/safearith"
)

func mustNarrow(t *testing.T, x safearith.Uint128) uint64 {
	t.Helper()
	v, err := safearith.Narrow(x)
	require.NoError(t, err)
	return v
}

func TestComputeDBalancedPool(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)
	d, err := s.ComputeD(safearith.Widen(5000), safearith.Widen(5000))
	require.NoError(t, err)
	require.Equal(t, uint64(10000), mustNarrow(t, d))
}

func TestComputeDZeroReserves(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	d, err := s.ComputeD(safearith.Zero(), safearith.Zero())
	require.NoError(t, err)
	require.True(t, d.IsZero())

	d, err = s.ComputeD(safearith.Widen(1000), safearith.Zero())
	require.NoError(t, err)
	require.True(t, d.IsZero())

	d, err = s.ComputeD(safearith.Zero(), safearith.Widen(1000))
	require.NoError(t, err)
	require.True(t, d.IsZero())
}

func TestSolveYRoundTrip(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	cases := []struct{ xa, xb uint64 }{
		{5000, 5000},
		{1000, 9000},
		{1, 1},
		{1000, 2000},
	}
	for _, c := range cases {
		d, err := s.ComputeD(safearith.Widen(c.xa), safearith.Widen(c.xb))
		require.NoError(t, err)
		y, err := s.SolveY(d, safearith.Widen(c.xa))
		require.NoError(t, err)
		got := mustNarrow(t, y)
		require.InDelta(t, float64(c.xb), float64(got), 1, "solve_y(%d,%d)", c.xa, c.xb)
	}
}

func TestComputeDInitialPoolS3(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	d, err := s.ComputeD(safearith.Widen(1000), safearith.Widen(2000))
	require.NoError(t, err)
	require.Equal(t, uint64(2912), mustNarrow(t, d))
}

// TestSwapS1 reproduces the first literal end-to-end scenario: A=85,
// balanced 5000/5000 pool, swap 100 of A into B at a 6% fee.
func TestSwapS1(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	r, err := s.SwapTo(safearith.Widen(100), safearith.Widen(5000), safearith.Widen(5000), safearith.Widen(6), safearith.Widen(100))
	require.NoError(t, err)

	require.Equal(t, uint64(5100), mustNarrow(t, r.NewX))
	require.Equal(t, uint64(4906), mustNarrow(t, r.NewY))
	require.Equal(t, uint64(94), mustNarrow(t, r.Out))
}

// TestSwapS2 continues S1: swap 100 of B back into A.
func TestSwapS2(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	r, err := s.SwapTo(safearith.Widen(100), safearith.Widen(4906), safearith.Widen(5100), safearith.Widen(6), safearith.Widen(100))
	require.NoError(t, err)

	require.Equal(t, uint64(5006), mustNarrow(t, r.NewX))
	require.Equal(t, uint64(5005), mustNarrow(t, r.NewY))
	require.Equal(t, uint64(95), mustNarrow(t, r.Out))
}

func TestDMonotoneUnderFee(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	dBefore, err := s.ComputeD(safearith.Widen(5000), safearith.Widen(5000))
	require.NoError(t, err)

	r, err := s.SwapTo(safearith.Widen(100), safearith.Widen(5000), safearith.Widen(5000), safearith.Widen(6), safearith.Widen(100))
	require.NoError(t, err)

	dAfter, err := s.ComputeD(r.NewX, r.NewY)
	require.NoError(t, err)

	require.True(t, dAfter.GTE(dBefore), "D must not shrink across a fee-paying swap")
	require.True(t, dAfter.GT(dBefore), "D must strictly grow when fee > 0")
}

func TestZeroFeeSwapConservesD(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	dBefore, err := s.ComputeD(safearith.Widen(5000), safearith.Widen(5000))
	require.NoError(t, err)

	r, err := s.SwapTo(safearith.Widen(100), safearith.Widen(5000), safearith.Widen(5000), safearith.Zero(), safearith.Widen(100))
	require.NoError(t, err)

	dAfter, err := s.ComputeD(r.NewX, r.NewY)
	require.NoError(t, err)

	require.InDelta(t, float64(mustNarrow(t, dBefore)), float64(mustNarrow(t, dAfter)), 1)
}

func TestSwapAgainstExhaustedReserveFails(t *testing.T) {
	s, err := New(85)
	require.NoError(t, err)

	// A 1-unit deposit into a near-empty destination reserve produces zero
	// gross output; spec.md §4.2.3 requires gross_out >= 1.
	_, err = s.SwapTo(safearith.Widen(1), safearith.Widen(5000), safearith.Widen(1), safearith.Widen(6), safearith.Widen(100))
	require.ErrorIs(t, err, ErrCalculationFailure)
}

func TestNewRejectsZeroAmp(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrCalculationFailure)
}

// genReserves draws each reserve independently from [1, 1_000_000_000].
func genReserves(t *rapid.T) (uint64, uint64) {
	xa := rapid.Uint64Range(1, 1_000_000_000).Draw(t, "xa")
	xb := rapid.Uint64Range(1, 1_000_000_000).Draw(t, "xb")
	return xa, xb
}

func genAmp(t *rapid.T) uint64 {
	return rapid.Uint64Range(1, 5000).Draw(t, "amp")
}

// genFee draws a (num, den) pair with num <= den, den never zero.
func genFee(t *rapid.T) (uint64, uint64) {
	den := rapid.Uint64Range(1, 10000).Draw(t, "feeDen")
	num := rapid.Uint64Range(0, den).Draw(t, "feeNum")
	return num, den
}

// TestPropertyDMonotoneUnderFee is invariant 1 of spec.md §8: for all valid
// (x_a, x_b, A, dx, fee), D after a fee-paying swap is >= D before, with
// equality only when fee == 0.
func TestPropertyDMonotoneUnderFee(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xa, xb := genReserves(t)
		amp := genAmp(t)
		dx := rapid.Uint64Range(1, xa).Draw(t, "dx")
		feeNum, feeDen := genFee(t)

		s, err := New(amp)
		if err != nil {
			t.Fatalf("New(%d): %v", amp, err)
		}

		dBefore, err := s.ComputeD(safearith.Widen(xa), safearith.Widen(xb))
		if err != nil {
			t.Fatalf("ComputeD: %v", err)
		}

		r, err := s.SwapTo(safearith.Widen(dx), safearith.Widen(xa), safearith.Widen(xb), safearith.Widen(feeNum), safearith.Widen(feeDen))
		if err != nil {
			t.Skip("swap did not produce a positive gross output for this draw")
		}

		dAfter, err := s.ComputeD(r.NewX, r.NewY)
		if err != nil {
			t.Fatalf("ComputeD after swap: %v", err)
		}

		if !dAfter.GTE(dBefore) {
			t.Fatalf("D shrank across a fee-paying swap: %s -> %s", dBefore, dAfter)
		}
		if feeNum > 0 && !dAfter.GT(dBefore) {
			t.Fatalf("D failed to strictly grow under a nonzero fee (%d/%d)", feeNum, feeDen)
		}
	})
}

// TestPropertyRoundTrip is invariant 2: solve_y(A, compute_D(x_a, x_b), x_a)
// == x_b within +/-1 integer ulp, for all (x_a, x_b, A) with both reserves
// >= 1.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xa, xb := genReserves(t)
		amp := genAmp(t)

		s, err := New(amp)
		if err != nil {
			t.Fatalf("New(%d): %v", amp, err)
		}

		d, err := s.ComputeD(safearith.Widen(xa), safearith.Widen(xb))
		if err != nil {
			t.Fatalf("ComputeD: %v", err)
		}

		y, err := s.SolveY(d, safearith.Widen(xa))
		if err != nil {
			t.Fatalf("SolveY: %v", err)
		}

		got, err := safearith.Narrow(y)
		if err != nil {
			t.Fatalf("Narrow: %v", err)
		}
		diff := int64(got) - int64(xb)
		if diff < -1 || diff > 1 {
			t.Fatalf("solve_y(%d,%d) round-trip mismatch: got %d", xa, xb, got)
		}
	})
}

// TestPropertySwapConservesD is invariant 3: a zero-fee swap leaves D
// unchanged, within +/-1 ulp.
func TestPropertySwapConservesD(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xa, xb := genReserves(t)
		amp := genAmp(t)
		dx := rapid.Uint64Range(1, xa).Draw(t, "dx")

		s, err := New(amp)
		if err != nil {
			t.Fatalf("New(%d): %v", amp, err)
		}

		dBefore, err := s.ComputeD(safearith.Widen(xa), safearith.Widen(xb))
		if err != nil {
			t.Fatalf("ComputeD: %v", err)
		}

		r, err := s.SwapTo(safearith.Widen(dx), safearith.Widen(xa), safearith.Widen(xb), safearith.Zero(), safearith.Widen(1))
		if err != nil {
			t.Skip("swap did not produce a positive gross output for this draw")
		}

		dAfter, err := s.ComputeD(r.NewX, r.NewY)
		if err != nil {
			t.Fatalf("ComputeD after swap: %v", err)
		}

		before, err := safearith.Narrow(dBefore)
		if err != nil {
			t.Fatalf("Narrow dBefore: %v", err)
		}
		after, err := safearith.Narrow(dAfter)
		if err != nil {
			t.Fatalf("Narrow dAfter: %v", err)
		}
		diff := int64(after) - int64(before)
		if diff < -1 || diff > 1 {
			t.Fatalf("zero-fee swap did not conserve D: %d -> %d", before, after)
		}
	})
}

// TestPropertyBoundedIteration is invariant 6: compute_D and solve_y
// terminate within maxIterations for any legal input.
func TestPropertyBoundedIteration(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xa, xb := genReserves(t)
		amp := genAmp(t)

		s, err := New(amp)
		if err != nil {
			t.Fatalf("New(%d): %v", amp, err)
		}

		d, dSteps, err := s.ComputeDSteps(safearith.Widen(xa), safearith.Widen(xb))
		if err != nil {
			t.Fatalf("ComputeDSteps: %v", err)
		}
		if dSteps > maxIterations {
			t.Fatalf("compute_D took %d steps, want <= %d", dSteps, maxIterations)
		}

		_, ySteps, err := s.SolveYSteps(d, safearith.Widen(xa))
		if err != nil {
			t.Fatalf("SolveYSteps: %v", err)
		}
		if ySteps > maxIterations {
			t.Fatalf("solve_y took %d steps, want <= %d", ySteps, maxIterations)
		}
	})
}
