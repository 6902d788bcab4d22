package partition

import "team-roulette/domain"

// Score rates a whole partition, higher is better:
// minus the variance of team sizes, minus weight for each violated pair.
func Score(teams [][]string, pairs []domain.Pair, weight float64) float64 {
	return -Variance(teams) - weight*float64(len(Conflicts(teams, pairs)))
}

// Variance is the population variance of team sizes.
func Variance(teams [][]string) float64 {
	if len(teams) == 0 {
		return 0
	}
	total := 0
	for _, team := range teams {
		total += len(team)
	}
	average := float64(total) / float64(len(teams))

	variance := 0.0
	for _, team := range teams {
		diff := float64(len(team)) - average
		variance += diff * diff
	}
	return variance / float64(len(teams))
}

// Conflicts returns the pairs whose two members share a team, team by team in pair order.
// A pair naming the same person twice only conflicts when two copies share a team.
func Conflicts(teams [][]string, pairs []domain.Pair) []domain.Pair {
	var conflicts []domain.Pair
	for _, team := range teams {
		present := make(map[string]int, len(team))
		for _, name := range team {
			present[name]++
		}
		for _, p := range pairs {
			if p.A == p.B {
				if present[p.A] > 1 {
					conflicts = append(conflicts, p)
				}
				continue
			}
			if present[p.A] > 0 && present[p.B] > 0 {
				conflicts = append(conflicts, p)
			}
		}
	}
	return conflicts
}
