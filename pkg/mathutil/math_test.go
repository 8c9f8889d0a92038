package mathutil_test

import (
	"math"
	"testing"

	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	t.Parallel()

	sum, err := mathutil.CheckedAdd(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)

	sum, err = mathutil.CheckedAdd(math.MaxUint64, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), sum)

	_, err = mathutil.CheckedAdd(math.MaxUint64, 1)
	require.EqualError(t, err, mathutil.ErrOverflow.Error())
}

func TestCheckedMul(t *testing.T) {
	t.Parallel()

	prod, err := mathutil.CheckedMul(250, 10000)
	require.NoError(t, err)
	require.Equal(t, uint64(2500000), prod)

	prod, err = mathutil.CheckedMul(0, math.MaxUint64)
	require.NoError(t, err)
	require.Zero(t, prod)

	_, err = mathutil.CheckedMul(math.MaxUint64, 2)
	require.EqualError(t, err, mathutil.ErrOverflow.Error())
}

func TestCheckedSub(t *testing.T) {
	t.Parallel()

	diff, err := mathutil.CheckedSub(10, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(6), diff)

	_, err = mathutil.CheckedSub(4, 10)
	require.EqualError(t, err, mathutil.ErrOverflow.Error())
}

func TestCheckedDiv(t *testing.T) {
	t.Parallel()

	q, err := mathutil.CheckedDiv(10, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(3), q)

	_, err = mathutil.CheckedDiv(10, 0)
	require.EqualError(t, err, mathutil.ErrOverflow.Error())
}

func TestClamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(5), mathutil.Clamp(1, 5, 10))
	require.Equal(t, uint64(10), mathutil.Clamp(100, 5, 10))
	require.Equal(t, uint64(7), mathutil.Clamp(7, 5, 10))
}

func TestRatio(t *testing.T) {
	t.Parallel()

	require.Equal(t, "250", mathutil.Ratio(2500000, 100000000).String())
	require.True(t, mathutil.Ratio(1, 0).IsZero())
}
