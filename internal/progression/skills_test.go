package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardKnownCategory(t *testing.T) {
	p := NewSkillProfile()
	for i := 0; i < 20; i++ {
		axis, _, ok, err := p.Reward("論理", 5, 1.3)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, SkillLogic, axis)
	}
	assert.Equal(t, 2, p[SkillLogic].Level)
	assert.Equal(t, 0, p[SkillLogic].Exp)
	assert.Equal(t, 130, p[SkillLogic].MaxExp)
}

func TestRewardUnknownCategoryIsNoop(t *testing.T) {
	p := NewSkillProfile()
	_, _, ok, err := p.Reward("trivia", 500, 1.3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, NewSkillProfile(), p)

	_, _, ok, err = p.Reward("grammar", 500, 1.3)
	require.NoError(t, err)
	assert.False(t, ok, "labels are matched exactly, not by axis name")
}

func TestRadarVectorOrder(t *testing.T) {
	p := NewSkillProfile()
	for i, axis := range AllSkillAxes() {
		p[axis].Level = i + 1
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, p.RadarVector())
	assert.Equal(t, []SkillAxis{"grammar", "vocabulary", "structure", "expression", "logic", "editing"}, AllSkillAxes())
}
