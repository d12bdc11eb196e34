package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/patrick-utz/sonorium/internal/tasks"
)

// CoversVerify checks every cover URL in the collection and prints a report.
func (r *Runner) CoversVerify(ctx context.Context, cmd *cli.Command) error {
	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	config := r.loadConfig(cmd)

	client := r.httpClient
	if config.Covers.TimeoutSeconds > 0 && client == http.DefaultClient {
		client = &http.Client{Timeout: time.Duration(config.Covers.TimeoutSeconds) * time.Second}
	}
	verifier := tasks.NewVerifier(client, config.Covers.RequestsPerSecond)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			switch update.Phase {
			case tasks.ScanRecords:
				r.writePlain("⧗ %s\n", update.Message)
			case tasks.CheckCover:
				r.writePlain("  [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.Summarize:
				r.writePlain("⧗ %s\n", update.Message)
			}
		}
	}()

	report, err := verifier.Verify(ctx, coll.All(), progressCh)
	close(progressCh)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("cover verification failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	r.writePlainHeader("Cover Verification")
	r.writePlain("Checked:     %d\n", report.Total)
	r.writePlain("Reachable:   %d\n", report.OKCount)
	r.writePlain("Missing URL: %d\n", report.MissingCount)
	r.writePlain("Failed:      %d\n", report.FailedCount)

	for _, check := range report.Checks {
		if check.Status == tasks.CoverOK {
			continue
		}
		r.writePlain("  ✗ %s: %s", check.Record.Label(), check.Status)
		if check.Detail != "" {
			r.writePlain(" (%s)", check.Detail)
		}
		r.writePlain("\n")
	}

	return nil
}
