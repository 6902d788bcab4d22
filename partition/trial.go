package partition

import (
	"math"

	"team-roulette/domain"
)

// partnerIndex lists, for every name, the forbidden pairs it belongs to.
// A self pair is listed once.
type partnerIndex map[string][]domain.Pair

func newPartnerIndex(pairs []domain.Pair) partnerIndex {
	index := make(partnerIndex)
	for _, p := range pairs {
		index[p.A] = append(index[p.A], p)
		if p.A != p.B {
			index[p.B] = append(index[p.B], p)
		}
	}
	return index
}

// conflicts counts the forbidden partners of name already seated in a team.
func (idx partnerIndex) conflicts(name string, seated map[string]int) int {
	count := 0
	for _, p := range idx[name] {
		if partner, _ := p.Other(name); seated[partner] > 0 {
			count++
		}
	}
	return count
}

// shuffle returns a uniformly permuted copy of names (Fisher-Yates).
func shuffle(source RandomSource, names []string) []string {
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(source.Float64() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// placementScore rates seating one more person in a team of size members.
func placementScore(conflicts, size int, average float64) float64 {
	if conflicts > 0 {
		return -ConflictFreeScore
	}
	score := ConflictFreeScore
	if float64(size) < average {
		score += (average - float64(size)) * BalanceWeight
	}
	return score
}

// buildTeams seats shuffled names one by one in the best scored team.
// Ties go to the lowest team index.
func buildTeams(source RandomSource, names []string, teamCount int, partners partnerIndex) [][]string {
	teams := make([][]string, teamCount)
	seated := make([]map[string]int, teamCount)
	for i := range seated {
		teams[i] = []string{}
		seated[i] = make(map[string]int)
	}
	average := float64(len(names)) / float64(teamCount)

	for _, name := range shuffle(source, names) {
		bestTeam := 0
		bestScore := math.Inf(-1)
		for i := range teams {
			score := placementScore(partners.conflicts(name, seated[i]), len(teams[i]), average)
			if score > bestScore {
				bestScore = score
				bestTeam = i
			}
		}
		teams[bestTeam] = append(teams[bestTeam], name)
		seated[bestTeam][name]++
	}
	return teams
}
