package progression

import "fmt"

// SkillAxis is one dimension of the skill radar chart.
type SkillAxis string

const (
	SkillGrammar    SkillAxis = "grammar"
	SkillVocabulary SkillAxis = "vocabulary"
	SkillStructure  SkillAxis = "structure"
	SkillExpression SkillAxis = "expression"
	SkillLogic      SkillAxis = "logic"
	SkillEditing    SkillAxis = "editing"
)

// AllSkillAxes returns the axes in radar order. Consumers render the radar positionally.
func AllSkillAxes() []SkillAxis {
	return []SkillAxis{SkillGrammar, SkillVocabulary, SkillStructure, SkillExpression, SkillLogic, SkillEditing}
}

// categoryAxes maps question category labels to the skill they train.
var categoryAxes = map[string]SkillAxis{
	"文法": SkillGrammar,
	"語彙": SkillVocabulary,
	"構成": SkillStructure,
	"表現": SkillExpression,
	"論理": SkillLogic,
	"推敲": SkillEditing,
}

// AxisForCategory looks up a category label exactly.
func AxisForCategory(category string) (SkillAxis, bool) {
	axis, ok := categoryAxes[category]
	return axis, ok
}

// SkillProfile maps every skill axis to its level track.
type SkillProfile map[SkillAxis]*LevelTrack

// NewSkillProfile seeds all six axes at the initial level.
func NewSkillProfile() SkillProfile {
	p := make(SkillProfile, len(AllSkillAxes()))
	for _, a := range AllSkillAxes() {
		p[a] = NewLevelTrack()
	}
	return p
}

// Reward adds amount to the skill trained by category. Unknown categories are a no-op and report ok=false.
func (p SkillProfile) Reward(category string, amount int, growth float64) (SkillAxis, LevelUp, bool, error) {
	axis, ok := AxisForCategory(category)
	if !ok {
		return "", LevelUp{}, false, nil
	}
	t, ok := p[axis]
	if !ok || t == nil {
		return "", LevelUp{}, false, fmt.Errorf("skill track %q missing", axis)
	}
	up, err := t.AddExp(amount, growth)
	if err != nil {
		return axis, LevelUp{}, false, err
	}
	return axis, up, true, nil
}

// RadarVector returns skill levels in radar order.
func (p SkillProfile) RadarVector() []int {
	out := make([]int, 0, len(AllSkillAxes()))
	for _, a := range AllSkillAxes() {
		level := 0
		if t, ok := p[a]; ok && t != nil {
			level = t.Level
		}
		out = append(out, level)
	}
	return out
}
