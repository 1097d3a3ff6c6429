package projects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	valid := func() Draft {
		return Draft{
			Name:         "My Shop",
			TechStack:    "mern",
			CurrentPhase: "startup",
			TargetPhase:  "scale",
		}
	}

	t.Run("accepts a minimal valid draft", func(t *testing.T) {
		d := valid()
		require.NoError(t, d.Validate())
	})

	t.Run("trims the name before validating", func(t *testing.T) {
		d := valid()
		d.Name = "  My Shop  "
		require.NoError(t, d.Validate())
		assert.Equal(t, "My Shop", d.Name)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		d := valid()
		d.Name = "   "
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Validation error")
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects a name over the length limit", func(t *testing.T) {
		d := valid()
		d.Name = strings.Repeat("x", MaxNameLen+1)
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum length of 100")
	})

	t.Run("accepts a name exactly at the limit", func(t *testing.T) {
		d := valid()
		d.Name = strings.Repeat("x", MaxNameLen)
		require.NoError(t, d.Validate())
	})

	t.Run("rejects an unknown tech stack", func(t *testing.T) {
		d := valid()
		d.TechStack = "cobol"
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "techstack must be one of")
	})

	t.Run("rejects an unknown phase", func(t *testing.T) {
		d := valid()
		d.CurrentPhase = "hypergrowth"
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "currentphase must be one of")
	})

	t.Run("normalizes scaling goals", func(t *testing.T) {
		d := valid()
		d.ScalingGoals = []string{" handle 10k users ", "", "handle 10k users", "cut costs"}
		require.NoError(t, d.Validate())
		assert.Equal(t, []string{"handle 10k users", "cut costs"}, d.ScalingGoals)
	})
}

func TestNormalizeGoals(t *testing.T) {
	t.Run("drops blanks and trims", func(t *testing.T) {
		got := NormalizeGoals([]string{"  a  ", "", "   ", "b"})
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("dedupes preserving first occurrence order", func(t *testing.T) {
		got := NormalizeGoals([]string{"b", "a", "b", "a", "c"})
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("caps at ten goals", func(t *testing.T) {
		in := make([]string, 0, 15)
		for i := 0; i < 15; i++ {
			in = append(in, strings.Repeat("g", i+1))
		}
		got := NormalizeGoals(in)
		assert.Len(t, got, MaxGoals)
		assert.Equal(t, "g", got[0])
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		got := NormalizeGoals(nil)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestPhaseRank(t *testing.T) {
	assert.Equal(t, 1, PhaseStartup.Rank())
	assert.Equal(t, 2, PhaseGrowth.Rank())
	assert.Equal(t, 3, PhaseScale.Rank())
	assert.Equal(t, 4, PhaseEnterprise.Rank())
	assert.Equal(t, 0, Phase("bogus").Rank())
}

func TestNewPublicID(t *testing.T) {
	t.Run("matches the prefix-NNNNN-NNNN shape", func(t *testing.T) {
		id, err := NewPublicID("sa")
		require.NoError(t, err)
		assert.Regexp(t, `^sa-\d{5}-\d{4}$`, id)
	})

	t.Run("successive ids differ", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 20; i++ {
			id, err := NewPublicID("sa")
			require.NoError(t, err)
			seen[id] = struct{}{}
		}
		assert.Greater(t, len(seen), 1)
	})
}
