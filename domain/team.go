// Package domain contains core concepts of team splitting.
// Teams, forbidden pairs and split results live here.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pair is an unordered couple of names that must not share a team.
type Pair struct {
	A string
	B string
}

func NewPair(a, b string) Pair {
	return Pair{A: a, B: b}
}

// Other returns the partner of name in the pair and whether name belongs to it.
func (p Pair) Other(name string) (string, bool) {
	switch name {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	}
	return "", false
}

func (p Pair) String() string {
	return fmt.Sprintf("%s ↔ %s", p.A, p.B)
}

type Team struct {
	Index   int
	Members []string
}

// Name is the display label of the team, counted from 1.
func (t Team) Name() string {
	return fmt.Sprintf("Team %d", t.Index+1)
}

// Split is the outcome of one team-splitting request.
type Split struct {
	ID        uuid.UUID
	Names     []string // full entity list, extended with names found in constraints
	Teams     []Team
	Conflicts []Pair
	Warnings  []string
	MessageID string // set once published
	CreatedAt time.Time
}

func NewSplit(names []string, teams [][]string, conflicts []Pair, at time.Time) Split {
	split := Split{
		ID:        uuid.New(),
		Names:     names,
		Teams:     make([]Team, len(teams)),
		Conflicts: conflicts,
		CreatedAt: at,
	}
	for i, members := range teams {
		split.Teams[i] = Team{Index: i, Members: members}
	}
	return split
}

// HasConflicts reports whether some forbidden pairs could not be honoured.
func (s Split) HasConflicts() bool {
	return len(s.Conflicts) > 0
}
