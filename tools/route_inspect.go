package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"team-roulette/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Dumps the pending voice routes of a (possibly running) server.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	message := flag.String("message", "", "Only show routes of this message")
	flag.Parse()

	// BypassLockGuard allows opening while the server holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	routes, err := repositories.NewRouteRepository(db, logs.GetLoggerFromString("WARN"), 0).ListRoutes()
	if err != nil {
		log.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Message", "Member", "Channel"})
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

	shown := 0
	for _, route := range routes {
		if *message != "" && !strings.EqualFold(route.MessageID, *message) {
			continue
		}
		table.Append([]string{route.MessageID, route.MemberID, route.ChannelID})
		shown++
	}
	table.Render()
	fmt.Printf("%d route(s)\n", shown)
}
