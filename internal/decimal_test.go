package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	t.Run("adds without binary float drift", func(t *testing.T) {
		a, err := NewDecimalFromFloat64(0.1)
		require.NoError(t, err)
		b, err := NewDecimalFromFloat64(0.2)
		require.NoError(t, err)

		sum := a.Add(b)
		assert.Equal(t, "0.3", sum.String())

		f, err := sum.Float64()
		require.NoError(t, err)
		assert.InDelta(t, 0.3, f, 1e-15)
	})

	t.Run("divides for bin means", func(t *testing.T) {
		sum := NewDecimalFromInt64(10)
		mean, err := sum.Div(NewDecimalFromInt64(4)).Float64()
		require.NoError(t, err)
		assert.Equal(t, 2.5, mean)
	})

	t.Run("compares values", func(t *testing.T) {
		assert.Equal(t, -1, NewDecimalFromInt64(1).Cmp(NewDecimalFromInt64(2)))
		assert.Equal(t, 0, NewDecimalFromInt64(2).Cmp(NewDecimalFromInt64(2)))
		assert.Equal(t, 1, NewDecimalFromInt64(3).Cmp(NewDecimalFromInt64(2)))
	})
}
