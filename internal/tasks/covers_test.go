package tasks

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrick-utz/sonorium/internal/models"
	internaltesting "github.com/patrick-utz/sonorium/internal/testing"
)

func coverResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

func TestVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies results per record", func(t *testing.T) {
		client := &http.Client{
			Transport: internaltesting.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				switch {
				case strings.Contains(req.URL.Path, "gone"):
					return coverResponse(http.StatusNotFound), nil
				case strings.Contains(req.URL.Path, "down"):
					return nil, errors.New("connection refused")
				default:
					return coverResponse(http.StatusOK), nil
				}
			}),
		}

		records := []models.Record{
			{ID: "a", Artist: "Can", Title: "Ege Bamyasi", CoverURL: "https://covers.test/ok.jpg"},
			{ID: "b", Artist: "Neu!", Title: "Neu!", CoverURL: "https://covers.test/gone.jpg"},
			{ID: "c", Artist: "Faust", Title: "So Far", CoverURL: "https://covers.test/down.jpg"},
			{ID: "d", Artist: "Cluster", Title: "Zuckerzeit"},
		}

		verifier := NewVerifier(client, 100)
		report, err := verifier.Verify(ctx, records, nil)
		require.NoError(t, err)

		require.Len(t, report.Checks, 4)
		assert.Equal(t, CoverOK, report.Checks[0].Status)
		assert.Equal(t, CoverBadStatus, report.Checks[1].Status)
		assert.Equal(t, CoverUnreachable, report.Checks[2].Status)
		assert.Equal(t, CoverMissing, report.Checks[3].Status)

		assert.Equal(t, 4, report.Total)
		assert.Equal(t, 1, report.OKCount)
		assert.Equal(t, 1, report.MissingCount)
		assert.Equal(t, 2, report.FailedCount)
	})

	t.Run("uses HEAD requests", func(t *testing.T) {
		var method string
		client := &http.Client{
			Transport: internaltesting.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				method = req.Method
				return coverResponse(http.StatusOK), nil
			}),
		}

		verifier := NewVerifier(client, 100)
		_, err := verifier.Verify(ctx, []models.Record{
			{ID: "a", Artist: "Can", Title: "Soundtracks", CoverURL: "https://covers.test/ok.jpg"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.MethodHead, method)
	})

	t.Run("emits progress updates", func(t *testing.T) {
		client := &http.Client{
			Transport: internaltesting.NewMockRoundTripper(coverResponse(http.StatusOK), nil),
		}

		records := []models.Record{
			{ID: "a", Artist: "Can", Title: "Delay 1968", CoverURL: "https://covers.test/a.jpg"},
			{ID: "b", Artist: "Can", Title: "Landed", CoverURL: "https://covers.test/b.jpg"},
		}

		progress := make(chan ProgressUpdate, 16)
		verifier := NewVerifier(client, 100)
		report, err := verifier.Verify(ctx, records, progress)
		require.NoError(t, err)
		close(progress)

		var phases []Phase
		var last ProgressUpdate
		for update := range progress {
			phases = append(phases, update.Phase)
			last = update
		}

		require.NotEmpty(t, phases)
		assert.Equal(t, ScanRecords, phases[0])
		assert.Equal(t, Summarize, last.Phase)
		assert.Equal(t, report, last.Data, "summary update carries the report")
		assert.Equal(t, 2, countPhase(phases, CheckCover))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		client := &http.Client{
			Transport: internaltesting.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				cancel()
				return nil, cancelled.Err()
			}),
		}

		records := []models.Record{
			{ID: "a", Artist: "Can", Title: "Saw Delight", CoverURL: "https://covers.test/a.jpg"},
			{ID: "b", Artist: "Can", Title: "Flow Motion", CoverURL: "https://covers.test/b.jpg"},
		}

		verifier := NewVerifier(client, 100)
		_, err := verifier.Verify(cancelled, records, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty collection", func(t *testing.T) {
		verifier := NewVerifier(nil, 0)
		report, err := verifier.Verify(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.Checks)
	})
}

func countPhase(phases []Phase, want Phase) int {
	n := 0
	for _, p := range phases {
		if p == want {
			n++
		}
	}
	return n
}

func TestCoverStatusString(t *testing.T) {
	tc := map[CoverStatus]string{
		CoverOK:          "ok",
		CoverMissing:     "missing",
		CoverUnreachable: "unreachable",
		CoverBadStatus:   "bad_status",
		CoverStatus(99):  "",
	}

	for status, want := range tc {
		assert.Equal(t, want, status.String())
	}
}
