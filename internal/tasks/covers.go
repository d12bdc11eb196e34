package tasks

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/patrick-utz/sonorium/internal/models"
)

// CoverStatus classifies the outcome of checking a single record's cover URL.
type CoverStatus int

const (
	CoverOK CoverStatus = iota
	CoverMissing
	CoverUnreachable
	CoverBadStatus
)

func (s CoverStatus) String() string {
	switch s {
	case CoverOK:
		return "ok"
	case CoverMissing:
		return "missing"
	case CoverUnreachable:
		return "unreachable"
	case CoverBadStatus:
		return "bad_status"
	default:
		return ""
	}
}

// CoverCheck is the verification result for one record.
type CoverCheck struct {
	Record models.Record // The record whose cover was checked
	Status CoverStatus   // Classification of the outcome
	Detail string        // Human-readable detail (HTTP status, error text)
}

// CoverReport aggregates the results of a full verification run.
type CoverReport struct {
	Checks       []CoverCheck
	Total        int
	OKCount      int
	MissingCount int
	FailedCount  int // Unreachable plus bad-status covers
}

// Verifier checks record cover URLs over HTTP.
//
// Requests are rate limited so a large collection doesn't hammer the image
// hosts.
type Verifier struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewVerifier creates a Verifier using the provided HTTP client and an upper
// bound of requestsPerSecond outbound requests.
func NewVerifier(client *http.Client, requestsPerSecond float64) *Verifier {
	if client == nil {
		client = http.DefaultClient
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 4
	}
	return &Verifier{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Verify checks the cover URL of every given record and returns a per-record
// report. Progress updates are sent on the optional progress channel.
//
// Verify stops early only when ctx is cancelled; individual failures are
// recorded in the report, not returned as errors.
func (v *Verifier) Verify(ctx context.Context, records []models.Record, progress chan<- ProgressUpdate) (*CoverReport, error) {
	report := &CoverReport{Total: len(records)}

	sendProgress(progress, scanRecordsUpdate(len(records)))

	for i, rec := range records {
		sendProgress(progress, checkCoverUpdate(i+1, len(records), rec))

		check, err := v.checkOne(ctx, rec)
		if err != nil {
			return nil, err
		}

		report.Checks = append(report.Checks, check)
		switch check.Status {
		case CoverOK:
			report.OKCount++
		case CoverMissing:
			report.MissingCount++
		default:
			report.FailedCount++
		}
	}

	sendProgress(progress, summarizeUpdate(report))
	return report, nil
}

// checkOne classifies a single record's cover. The returned error is non-nil
// only for context cancellation.
func (v *Verifier) checkOne(ctx context.Context, rec models.Record) (CoverCheck, error) {
	if rec.CoverURL == "" {
		return CoverCheck{Record: rec, Status: CoverMissing, Detail: "no cover URL"}, nil
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return CoverCheck{}, fmt.Errorf("cover verification cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rec.CoverURL, nil)
	if err != nil {
		return CoverCheck{Record: rec, Status: CoverUnreachable, Detail: err.Error()}, nil
	}

	resp, err := v.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return CoverCheck{}, fmt.Errorf("cover verification cancelled: %w", ctx.Err())
		}
		return CoverCheck{Record: rec, Status: CoverUnreachable, Detail: err.Error()}, nil
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return CoverCheck{Record: rec, Status: CoverBadStatus, Detail: resp.Status}, nil
	}

	return CoverCheck{Record: rec, Status: CoverOK, Detail: resp.Status}, nil
}
