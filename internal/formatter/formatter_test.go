package formatter

import (
	"strings"
	"testing"

	"github.com/patrick-utz/sonorium/internal/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{
			ID:       "rec1",
			Artist:   "Kraftwerk",
			Title:    "Autobahn",
			Year:     1974,
			Format:   "vinyl",
			CoverURL: "https://covers.test/autobahn.jpg",
			Owned:    true,
			Favorite: true,
		},
		{
			ID:       "rec2",
			Artist:   "Neu!",
			Title:    "Neu! 75",
			Year:     1975,
			Format:   "cd",
			Wishlist: true,
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleRecords())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Artist,Title,Year,Format,CoverURL,Owned,Wishlist,Favorite,Ordered") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "rec1") {
			t.Errorf("CSV missing record id")
		}
		if !strings.Contains(output, "Kraftwerk") {
			t.Errorf("CSV missing artist")
		}
		if !strings.Contains(output, "1975") {
			t.Errorf("CSV missing year")
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header plus 2 rows, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleRecords(), "My Shelf")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# My Shelf") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Records**: 2") {
			t.Errorf("Markdown missing record count")
		}
		if !strings.Contains(output, "**Owned**: 1") {
			t.Errorf("Markdown missing owned count")
		}
		if !strings.Contains(output, "1. Kraftwerk - Autobahn (1974) ★") {
			t.Errorf("Markdown missing favorite marker, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown default title", func(t *testing.T) {
		data, err := ExportToMarkdown(nil, "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "# Record Collection") {
			t.Errorf("expected default title, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleRecords())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Kraftwerk - Autobahn [owned] (1974)") {
			t.Errorf("text output malformed, got: %s", output)
		}
		if !strings.Contains(output, "Neu! - Neu! 75 [wishlist] (1975)") {
			t.Errorf("wishlist record malformed, got: %s", output)
		}
	})
}

func TestJSONRoundTrip(t *testing.T) {
	records := sampleRecords()

	data, err := ExportToJSON(records)
	if err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if len(parsed) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(parsed))
	}
	if parsed[0].ID != "rec1" || parsed[0].Artist != "Kraftwerk" || !parsed[0].Owned {
		t.Errorf("round trip lost data: %+v", parsed[0])
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ParseJSON([]byte(`{"id":"solo"}`)); err == nil {
		t.Error("expected error for non-array JSON")
	}
}
