package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpression(t *testing.T) {
	t.Run("evaluates restricted arithmetic", func(t *testing.T) {
		cases := []struct {
			expr string
			want float64
		}{
			{"2+3", 5},
			{"2+3*4", 14},
			{"(2+3)*4", 20},
			{"10/4", 2.5},
			{"2^10", 1024},
			{"2^3^2", 512}, // right-associative
			{"-3+5", 2},
			{"-(2+3)", -5},
			{"1.5*2", 3},
			{" 2 + 2 ", 4},
			{"4^0.5", 2},
		}

		for _, tc := range cases {
			t.Run(tc.expr, func(t *testing.T) {
				got, err := EvalExpression(tc.expr)
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)
			})
		}
	})

	t.Run("rejects names and unsupported characters", func(t *testing.T) {
		for _, expr := range []string{"x+1", "min", "2+a", "__import__", "1;2", "2%3"} {
			t.Run(expr, func(t *testing.T) {
				_, err := EvalExpression(expr)
				require.Error(t, err)

				var parseErr *ParseError
				assert.ErrorAs(t, err, &parseErr)
			})
		}
	})

	t.Run("rejects malformed expressions", func(t *testing.T) {
		for _, expr := range []string{"", "2+", "(2+3", "2 3", "()", "*2"} {
			t.Run(expr, func(t *testing.T) {
				_, err := EvalExpression(expr)
				assert.Error(t, err)
			})
		}
	})
}
