package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-redis/redis/v8"
	"github.com/icecave/relay/cmd"
	"github.com/icecave/relay/journal"
)

// source provides the most recent journal entries.
type source interface {
	Entries(ctx context.Context, n int64) ([]journal.Entry, error)
}

func main() {
	n := flag.Int64("n", 20, "number of entries to show, 0 for all")
	flag.Parse()

	config, err := cmd.GetConfigFromEnvironment()
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	if config.Journal.RedisAddress == "" {
		color.Red("REDIS_ADDR is not set, there is no journal to read")
		os.Exit(1)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Journal.RedisAddress,
		Password: config.Journal.RedisPassword,
	})

	code := run(
		context.Background(),
		&journal.RedisJournal{
			Client: client,
			Key:    config.Journal.Key,
		},
		*n,
		os.Stdout,
	)

	client.Close()
	os.Exit(code)
}

// run writes up to n of the most recent entries to w, oldest first, and
// returns the process exit code. Failed transactions are highlighted.
func run(ctx context.Context, src source, n int64, w io.Writer) int {
	entries, err := src.Entries(ctx, n)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	failed := color.New(color.FgRed)
	for _, e := range entries {
		if e.Error != "" || e.Status >= 500 || e.Status == 0 {
			failed.Fprintln(w, formatEntry(e))
		} else {
			fmt.Fprintln(w, formatEntry(e))
		}
	}

	return 0
}

func formatEntry(e journal.Entry) string {
	fields := []string{
		e.Time.UTC().Format(time.RFC3339),
		e.ID,
		orHyphen(e.RemoteAddr),
		orHyphen(e.Method),
		orHyphen(e.URL),
	}

	if e.Local {
		fields = append(fields, "local")
	} else {
		fields = append(fields, orHyphen(e.Upstream))
	}

	if e.Status == 0 {
		fields = append(fields, "-")
	} else {
		fields = append(fields, fmt.Sprintf("%d", e.Status))
	}

	fields = append(
		fields,
		humanize.FormatFloat("#,###.##", e.DurationMS)+"ms",
		humanize.Bytes(uint64(e.BytesOut)),
	)

	if e.Error != "" {
		fields = append(fields, fmt.Sprintf("%q", e.Error))
	}

	return strings.Join(fields, " ")
}

func orHyphen(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
