package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTime(t *testing.T) {
	t.Run("resolves recognized forms", func(t *testing.T) {
		cases := []struct {
			token string
			total float64
			want  float64
		}{
			{"end", 1000, 999.9},
			{".5", 1000, 500.0},
			{".25", 400, 100.0},
			{"1:30", 3600, 5400.0},
			{"1:30:45", 3600, 5445.0},
			{"1h30m", 3600, 5400.0},
			{"1h30m45s", 3600, 5445.0},
			{"1h45s", 3600, 3645.0},
			{"4h20", 3600, 15600.0},
			{"1h", 3600, 3600.0},
			{"5m", 3600, 300.0},
			{"90s", 3600, 90.0},
			{"30", 3600, 30.0},
			{"2.5", 3600, 2.5},
		}

		for _, tc := range cases {
			t.Run(tc.token, func(t *testing.T) {
				got, err := ResolveTime(tc.token, tc.total)
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)
			})
		}
	})

	t.Run("end leaves room for a final interpolation step", func(t *testing.T) {
		got, err := ResolveTime("end", 60)
		require.NoError(t, err)
		assert.Less(t, got, 60.0)
		assert.InDelta(t, 59.9, got, 1e-9)
	})

	t.Run("fails with ParseError naming the token", func(t *testing.T) {
		for _, token := range []string{".x", "1:xx", "1:2:3:4", "xhym", "xm", "xs", "abc"} {
			t.Run(token, func(t *testing.T) {
				_, err := ResolveTime(token, 1000)
				require.Error(t, err)

				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, token, parseErr.Token)
			})
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := ResolveTime("1h30m", 7200)
		require.NoError(t, err)
		second, err := ResolveTime("1h30m", 7200)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
