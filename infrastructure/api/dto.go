package api

import (
	"time"

	"team-roulette/domain"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

const defaultTeamCount = 2

// SplitRequest splits typed names. Each entry of Names may hold several names, one per line.
type SplitRequest struct {
	Names      []string `json:"names" validate:"required,min=1"`
	Exceptions []string `json:"exceptions"`
	TeamCount  int      `json:"team_count" validate:"required,min=1,max=100"`
	Trials     int      `json:"trials" validate:"omitempty,min=1,max=1000"`
	Publish    bool     `json:"publish"`
}

func (r SplitRequest) toCommand() domain.SplitCommand {
	return domain.SplitCommand{
		Names:      r.Names,
		Exceptions: r.Exceptions,
		TeamCount:  r.TeamCount,
		Trials:     r.Trials,
		Publish:    r.Publish,
	}
}

// TeamsRequest splits the watched voice channel, team_count defaults to 2.
type TeamsRequest struct {
	TeamCount  int      `json:"team_count" validate:"omitempty,min=1,max=100"`
	Exceptions []string `json:"exceptions"`
	Trials     int      `json:"trials" validate:"omitempty,min=1,max=1000"`
}

func (r TeamsRequest) toCommand() domain.SplitVoiceCommand {
	teamCount := r.TeamCount
	if teamCount == 0 {
		teamCount = defaultTeamCount
	}
	return domain.SplitVoiceCommand{Exceptions: r.Exceptions, TeamCount: teamCount, Trials: r.Trials}
}

type TeamResponse struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type SplitResponse struct {
	Success   bool           `json:"success"`
	ID        string         `json:"id"`
	Names     []string       `json:"names"`
	Teams     []TeamResponse `json:"teams"`
	Conflicts [][2]string    `json:"conflicts"`
	Warnings  []string       `json:"warnings"`
	MessageID string         `json:"message_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func toSplitResponse(split domain.Split) SplitResponse {
	return SplitResponse{
		Success: true,
		ID:      split.ID.String(),
		Names:   lo.Ternary(split.Names == nil, []string{}, split.Names),
		Teams: lo.Map(split.Teams, func(team domain.Team, _ int) TeamResponse {
			return TeamResponse{Name: team.Name(), Members: team.Members}
		}),
		Conflicts: lo.Map(split.Conflicts, func(p domain.Pair, _ int) [2]string { return [2]string{p.A, p.B} }),
		Warnings:  lo.Ternary(split.Warnings == nil, []string{}, split.Warnings),
		MessageID: split.MessageID,
		CreatedAt: split.CreatedAt,
	}
}

type VoiceMembersResponse struct {
	Members []string `json:"members"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
