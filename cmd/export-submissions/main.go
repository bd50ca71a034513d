package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/edustar/intake-backend/internal/client"
	"github.com/edustar/intake-backend/internal/export"
	"github.com/edustar/intake-backend/internal/logger"
)

func main() {
	apiURL := flag.String("api", envOr("INTAKE_API_URL", "http://localhost:8080"), "base URL of the intake API")
	formatFlag := flag.String("format", "table", "output format: csv, xlsx or table")
	out := flag.String("out", "", `output file ("-" for stdout; default stdout for table, dated file otherwise)`)
	flag.Parse()

	log := logger.New(os.Stderr, "pretty")

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -format")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	subs, err := client.New(*apiURL).List(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("api", *apiURL).Msg("Failed to fetch submissions")
	}

	path := *out
	if path == "" && format != export.FormatTable {
		path = export.Filename(format, time.Now())
	}

	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output file")
		}
		defer f.Close()
		w = f
	} else if format == export.FormatXLSX && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal().Msg("Refusing to write XLSX to a terminal; use -out")
	}

	if err := export.Write(w, format, subs); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	if w != os.Stdout {
		fmt.Fprintf(os.Stderr, "Exported %d submissions to %s\n", len(subs), path)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
