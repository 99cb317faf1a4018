package domain

import "sort"

const (
	// MaxRounds is how many rounds a session plays.
	MaxRounds = 4
	// QuestionsPerRound caps the questions asked in one round.
	QuestionsPerRound = 5
)

// BuildRounds groups questions by round number in ascending order, keeps the first MaxRounds rounds
// and the first QuestionsPerRound questions of each by sequence number. Questions requiring a higher
// player level than playerLevel are left out.
func BuildRounds(questions []QuestionSpec, playerLevel int) []Round {
	byRound := make(map[int][]QuestionSpec)
	for _, q := range questions {
		if q.MinLevel > playerLevel {
			continue
		}
		byRound[q.Round] = append(byRound[q.Round], q)
	}

	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	if len(numbers) > MaxRounds {
		numbers = numbers[:MaxRounds]
	}

	rounds := make([]Round, 0, len(numbers))
	for _, n := range numbers {
		items := byRound[n]
		sort.SliceStable(items, func(i, j int) bool { return items[i].No < items[j].No })
		if len(items) > QuestionsPerRound {
			items = items[:QuestionsPerRound]
		}
		rounds = append(rounds, Round{Number: n, Questions: items})
	}
	return rounds
}
