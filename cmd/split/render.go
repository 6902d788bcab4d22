package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"team-roulette/domain"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// render prints one row per team, then conflicts and parse warnings.
func render(w io.Writer, split domain.Split, colours bool) {
	paint := func(style color.Style, s string) string {
		if !colours {
			return s
		}
		return style.Render(s)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Team", "Size", "Members"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	for _, team := range split.Teams {
		table.Append([]string{
			paint(color.New(color.BgBlack, color.FgGreen), team.Name()),
			strconv.Itoa(len(team.Members)),
			strings.Join(team.Members, ", "),
		})
	}
	table.Render()

	if split.HasConflicts() {
		conflicts := lo.Map(split.Conflicts, func(p domain.Pair, _ int) string { return p.String() })
		fmt.Fprintln(w, paint(color.New(color.FgRed), "Could not keep apart: "+strings.Join(conflicts, ", ")))
	}
	for _, warning := range split.Warnings {
		fmt.Fprintln(w, paint(color.New(color.FgYellow), "Warning: "+warning))
	}
	if split.MessageID != "" {
		fmt.Fprintf(w, "Published as message %s\n", split.MessageID)
	}
}
