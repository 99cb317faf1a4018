package progression

import (
	"sort"

	"skill-evolve-service/internal/domain"
)

// ValidateSingle compares a single submitted answer to the canonical one, byte for byte.
func ValidateSingle(q domain.QuestionSpec, submitted string) bool {
	if q.Kind == domain.KindMultiple {
		return false
	}
	return submitted == q.Answer
}

// ValidateMultiple compares a set of answers regardless of order. Both sides are sorted and
// compared index by index, so duplicates in the submission are not collapsed.
func ValidateMultiple(q domain.QuestionSpec, submitted []string) bool {
	if q.Kind != domain.KindMultiple || q.Answers == nil {
		return false
	}
	if len(submitted) != len(q.Answers) {
		return false
	}

	got := append([]string(nil), submitted...)
	want := append([]string(nil), q.Answers...)
	sort.Strings(got)
	sort.Strings(want)
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// Validate judges a submission for either kind of question.
func Validate(q domain.QuestionSpec, submitted []string) bool {
	if q.Kind == domain.KindMultiple {
		return ValidateMultiple(q, submitted)
	}
	if len(submitted) != 1 {
		return false
	}
	return ValidateSingle(q, submitted[0])
}
