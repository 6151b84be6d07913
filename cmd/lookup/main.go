// Command lookup resolves one headword and prints the six-line entry layout.
//
//	lookup -word дом
//	lookup -word %D0%B4%D0%BE%D0%BC
//
// Logs go to stderr; the entry goes to stdout. Exit codes: 0 = success
// (including unresolved words), 1 = configuration or setup error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/heartmarshall/lexlookup/internal/app"
)

func main() {
	word := flag.String("word", "", "headword to look up (may be percent-encoded)")
	flag.Parse()

	if *word == "" && flag.NArg() > 0 {
		*word = strings.Join(flag.Args(), " ")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunLookup(ctx, *word, os.Stdout); err != nil {
		slog.Error("lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
