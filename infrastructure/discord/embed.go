package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"team-roulette/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const (
	EmbedColor = 0x5865f2
	EmbedTitle = "🎲 Teams created!"

	// Discord rejects embeds above these limits.
	maxFields     = 25
	maxFieldValue = 1024
)

// RenderEmbed formats a split as one embed field per team.
func RenderEmbed(split domain.Split) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     EmbedTitle,
		Color:     EmbedColor,
		Timestamp: split.CreatedAt.UTC().Format(time.RFC3339),
	}
	if split.HasConflicts() {
		conflicts := lo.Map(split.Conflicts, func(p domain.Pair, _ int) string { return p.String() })
		embed.Description = "⚠️ Could not keep apart: " + strings.Join(conflicts, ", ")
	}

	for _, team := range lo.Slice(split.Teams, 0, maxFields) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("🏆 %s (%s)", team.Name(), headcount(len(team.Members))),
			Value:  fieldValue(team.Members),
			Inline: false,
		})
	}
	return embed
}

func headcount(n int) string {
	if n == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d people", n)
}

func fieldValue(members []string) string {
	if len(members) == 0 {
		return "—"
	}
	value := strings.Join(lo.Map(members, func(name string, _ int) string { return "🔸 " + name }), "\n")
	if utf8.RuneCountInString(value) <= maxFieldValue {
		return value
	}
	runes := []rune(value)
	return string(runes[:maxFieldValue-1]) + "…"
}
