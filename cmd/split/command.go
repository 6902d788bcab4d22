package main

import (
	"fmt"

	"team-roulette/domain"
	"team-roulette/errors"
	"team-roulette/partition"
)

// splitCommand rejects a trial count below one, the service would read 0 as its default.
func splitCommand(names, exceptions string, teams, trials int, publish bool) (domain.SplitCommand, error) {
	if trials < 1 {
		return domain.SplitCommand{}, fmt.Errorf("%w: %d", errors.ErrInvalidTrials, trials)
	}
	return domain.SplitCommand{
		Names:      []string{names},
		Exceptions: partition.ParseNames(exceptions),
		TeamCount:  teams,
		Trials:     trials,
		Publish:    publish,
	}, nil
}
