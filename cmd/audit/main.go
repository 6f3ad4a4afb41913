// Command audit checks every catalogue shape against the chord engine and
// exits non-zero when any shape sounds the wrong tones.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/catalogue"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/database"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/joho/godotenv"
)

const auditTimeout = time.Minute

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	databaseURL := flag.String("database", cfg.DatabaseURL, "Postgres DSN; empty audits the built-in catalogue")
	showAll := flag.Bool("all", false, "print passing shapes too")
	asJSON := flag.Bool("json", false, "print results as JSON")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	store, db, err := catalogue.Open(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("Failed to open shape catalogue: %v", err)
	}
	if db != nil {
		defer func() { _ = database.Close(db) }()
	}

	results, failures, err := catalogue.AuditStore(ctx, store, fretboard.StandardTuning)
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	if err := report(os.Stdout, results, failures, *showAll, *asJSON); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	if failures > 0 {
		cancel()
		os.Exit(1)
	}
}

func report(w io.Writer, results []catalogue.AuditResult, failures int, showAll, asJSON bool) error {
	total := len(results)
	if !showAll {
		failing := make([]catalogue.AuditResult, 0, failures)
		for _, r := range results {
			if !r.OK {
				failing = append(failing, r)
			}
		}
		results = failing
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d shapes audited, %d failing\n", total, failures)
	return err
}
