package internal

import (
	"testing"
	"timesynth/specs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) FieldRegistry {
	t.Helper()
	registry, err := NewFieldRegistry(map[string]specs.FieldSpec{
		"alpha": {Shorthand: "a", Min: 0, Max: 100},
		"beta":  {Shorthand: "b", Min: 0, Max: 32},
	})
	require.NoError(t, err)
	return registry
}

func TestParseKeyframeCompact(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("parses an absolute keyframe", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a60@30s", 3600)
		require.NoError(t, err)

		require.NotNil(t, kf.Time)
		assert.Equal(t, 30.0, *kf.Time)
		assert.Equal(t, "alpha", kf.Field)
		assert.Equal(t, ValueAbsolute, kf.Value.Kind())
		assert.Equal(t, 60.0, kf.Value.Absolute())
		assert.True(t, kf.Options.IsZero())
		assert.Empty(t, kf.Relationships)
	})

	t.Run("parses min and max sentinels at parse time", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "amin@10s", 3600)
		require.NoError(t, err)
		assert.Equal(t, 0.0, kf.Value.Absolute())

		kf, err = ParseKeyframe(registry, "bmax@10s", 3600)
		require.NoError(t, err)
		assert.Equal(t, 32.0, kf.Value.Absolute())
	})

	t.Run("parses a relative value", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a+10@20s", 3600)
		require.NoError(t, err)

		assert.Equal(t, ValueRelative, kf.Value.Kind())
		op, operand := kf.Value.Relative()
		assert.Equal(t, byte('+'), op)
		assert.Equal(t, 10.0, operand)
	})

	t.Run("parses a fractional time", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@.5", 1000)
		require.NoError(t, err)
		assert.Equal(t, 500.0, *kf.Time)
	})

	t.Run("parses a trailing transition symbol", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a+10@20s~", 3600)
		require.NoError(t, err)
		assert.Equal(t, "smooth", kf.Options.MovementType)
		assert.Equal(t, 20.0, *kf.Time)
	})

	t.Run("parses step and pulse transitions", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@20s|", 3600)
		require.NoError(t, err)
		assert.Equal(t, "step", kf.Options.MovementType)

		kf, err = ParseKeyframe(registry, "a50@20s#", 3600)
		require.NoError(t, err)
		assert.Equal(t, "pulse", kf.Options.MovementType)
	})

	t.Run("default-setting keyframe has no time", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a~", 3600)
		require.NoError(t, err)

		assert.Nil(t, kf.Time)
		assert.Equal(t, "alpha", kf.Field)
		assert.Equal(t, ValueNone, kf.Value.Kind())
		assert.Equal(t, "smooth", kf.Options.MovementType)
	})

	t.Run("bare shorthand is a default-setting keyframe", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a", 3600)
		require.NoError(t, err)
		assert.Nil(t, kf.Time)
		assert.True(t, kf.Options.IsZero())
	})

	t.Run("pulse marker records post-behavior return", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@55s^", 3600)
		require.NoError(t, err)

		assert.Equal(t, "return", kf.Options.PostBehavior)
		assert.Nil(t, kf.Options.PostValue)
		assert.Equal(t, 55.0, *kf.Time)
		assert.Equal(t, 50.0, kf.Value.Absolute())
	})

	t.Run("pulse marker with modifier records the return operation", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@55s^+10", 3600)
		require.NoError(t, err)

		assert.Equal(t, "return", kf.Options.PostBehavior)
		require.NotNil(t, kf.Options.PostValue)
		assert.Equal(t, byte('+'), kf.Options.PostValue.Op)
		assert.Equal(t, 10.0, kf.Options.PostValue.Operand)
	})

	t.Run("parses named options", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@45s(pow=3, n=0.5)", 3600)
		require.NoError(t, err)

		assert.Equal(t, "pow", kf.Options.MovementType)
		assert.Equal(t, 3.0, kf.Options.Pow)
		require.NotNil(t, kf.Options.Noise)
		assert.Equal(t, 0.5, *kf.Options.Noise)
	})

	t.Run("parses sin option", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@45s(sin)", 3600)
		require.NoError(t, err)
		assert.Equal(t, "sin", kf.Options.MovementType)
	})

	t.Run("parses inline relationships", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "amin@.8(b*0.75)", 1000)
		require.NoError(t, err)

		assert.Equal(t, 800.0, *kf.Time)
		assert.Equal(t, 0.0, kf.Value.Absolute())
		require.Len(t, kf.Relationships, 1)
		assert.Equal(t, "beta", kf.Relationships[0].Field)
		assert.Equal(t, byte('*'), kf.Relationships[0].Op)
		assert.Equal(t, 0.75, kf.Relationships[0].Operand)
	})

	t.Run("ignores relationships with unknown shorthands", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a50@10s(z*0.5)", 3600)
		require.NoError(t, err)
		assert.Empty(t, kf.Relationships)
	})

	t.Run("evaluates literal arithmetic values", func(t *testing.T) {
		kf, err := ParseKeyframe(registry, "a(2+3)*10@30s", 3600)
		require.NoError(t, err)
		assert.Equal(t, 50.0, kf.Value.Absolute())
	})

	t.Run("rejects unknown shorthand listing the valid ones", func(t *testing.T) {
		_, err := ParseKeyframe(registry, "z50@30s", 3600)
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "a")
		assert.Contains(t, parseErr.Reason, "b")
	})

	t.Run("rejects an empty keyframe string", func(t *testing.T) {
		_, err := ParseKeyframe(registry, "", 3600)
		require.Error(t, err)
	})

	t.Run("rejects an unparseable value", func(t *testing.T) {
		_, err := ParseKeyframe(registry, "afoo@30s", 3600)
		require.Error(t, err)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("rejects a bad relative operand", func(t *testing.T) {
		_, err := ParseKeyframe(registry, "a+x@30s", 3600)
		require.Error(t, err)
	})
}
