// package formatter provides functions to export the record collection to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/patrick-utz/sonorium/internal/models"
)

// ExportToCSV converts records to CSV format with columns: ID, Artist, Title, Year, Format, CoverURL, Owned, Wishlist, Favorite, Ordered
func ExportToCSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Artist", "Title", "Year", "Format", "CoverURL", "Owned", "Wishlist", "Favorite", "Ordered"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Artist,
			rec.Title,
			strconv.Itoa(rec.Year),
			rec.Format,
			rec.CoverURL,
			strconv.FormatBool(rec.Owned),
			strconv.FormatBool(rec.Wishlist),
			strconv.FormatBool(rec.Favorite),
			strconv.FormatBool(rec.Ordered),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts records to a Markdown listing with a summary header
func ExportToMarkdown(records []models.Record, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Record Collection"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Records**: %d\n\n", len(records)))

	owned, wishlist, favorites := 0, 0, 0
	for _, rec := range records {
		if rec.Owned {
			owned++
		}
		if rec.Wishlist {
			wishlist++
		}
		if rec.Favorite {
			favorites++
		}
	}
	buf.WriteString(fmt.Sprintf("**Owned**: %d · **Wishlist**: %d · **Favorites**: %d\n\n", owned, wishlist, favorites))

	buf.WriteString("## Records\n\n")
	for i, rec := range records {
		yearPart := ""
		if rec.Year > 0 {
			yearPart = fmt.Sprintf(" (%d)", rec.Year)
		}
		marker := ""
		if rec.Favorite {
			marker = " ★"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, rec.Artist, rec.Title, yearPart, marker))
	}

	return buf.Bytes(), nil
}

// ExportToText converts records to plain text format, one record per line
func ExportToText(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer

	for _, rec := range records {
		status := "wishlist"
		if rec.Owned {
			status = "owned"
		}
		line := fmt.Sprintf("%s - %s [%s]", rec.Artist, rec.Title, status)
		if rec.Year > 0 {
			line = fmt.Sprintf("%s (%d)", line, rec.Year)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts records to indented JSON, the format ParseJSON accepts
func ExportToJSON(records []models.Record) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON reads a JSON array of records, the interchange format used by the
// import command
func ParseJSON(data []byte) ([]models.Record, error) {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records JSON: %w", err)
	}
	return records, nil
}
