package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/patrick-utz/sonorium/internal/formatter"
	"github.com/patrick-utz/sonorium/internal/models"
	"github.com/patrick-utz/sonorium/internal/records"
	"github.com/patrick-utz/sonorium/internal/shared"
)

// requireID extracts the positional record id argument.
func requireID(cmd *cli.Command) (string, error) {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return "", fmt.Errorf("%w: record id is required", shared.ErrMissingArgument)
	}
	return id, nil
}

// viewRecords resolves a --view flag value against the collection's derived views.
func viewRecords(coll *records.Collection, view string) ([]models.Record, error) {
	switch strings.ToLower(strings.TrimSpace(view)) {
	case "", "all":
		return coll.All(), nil
	case "owned":
		return coll.Owned(), nil
	case "wishlist":
		return coll.Wishlist(), nil
	case "favorites", "favourite", "favorite":
		return coll.Favorites(), nil
	default:
		return nil, fmt.Errorf("%w: unknown view %q", shared.ErrInvalidFlag, view)
	}
}

// RecordsAdd adds a single record to the collection.
func (r *Runner) RecordsAdd(ctx context.Context, cmd *cli.Command) error {
	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	payload := models.Record{
		Artist:   cmd.String("artist"),
		Title:    cmd.String("title"),
		Year:     int(cmd.Int("year")),
		Format:   cmd.String("format"),
		CoverURL: cmd.String("cover"),
		Notes:    cmd.String("notes"),
		Owned:    cmd.Bool("owned"),
		Wishlist: cmd.Bool("wishlist"),
	}

	created, err := coll.Add(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	r.logger.Info("record added", "id", created.ID, "label", created.Label())

	if cmd.Bool("json") {
		return r.writeJSON(created, true)
	}
	return r.writePlain("✓ added %s (%s)\n", created.Label(), created.ID)
}

// RecordsList prints a view of the collection.
func (r *Runner) RecordsList(ctx context.Context, cmd *cli.Command) error {
	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	recs, err := viewRecords(coll, cmd.String("view"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(recs, cmd.Bool("pretty"))
	}

	if len(recs) == 0 {
		return r.writePlain("no records\n")
	}

	for i, rec := range recs {
		marker := " "
		if rec.Favorite {
			marker = "★"
		}
		r.writePlain("%3d. %s %s", i+1, marker, rec.Label())
		if rec.Year > 0 {
			r.writePlain(" (%d)", rec.Year)
		}
		r.writePlain("  [%s]\n", rec.ID)
	}
	return r.writePlain("%d record(s)\n", len(recs))
}

// RecordsGet prints a single record by id.
func (r *Runner) RecordsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, ok := coll.RecordByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(rec, true)
	}

	r.writePlain("%s\n", rec.Label())
	if rec.Year > 0 {
		r.writePlain("Year:     %d\n", rec.Year)
	}
	if rec.Format != "" {
		r.writePlain("Format:   %s\n", rec.Format)
	}
	if rec.CoverURL != "" {
		r.writePlain("Cover:    %s\n", rec.CoverURL)
	}
	if rec.Notes != "" {
		r.writePlain("Notes:    %s\n", rec.Notes)
	}
	r.writePlain("Owned:    %v\n", rec.Owned)
	r.writePlain("Wishlist: %v\n", rec.Wishlist)
	r.writePlain("Favorite: %v\n", rec.Favorite)
	r.writePlain("Ordered:  %v\n", rec.Ordered)
	return nil
}

// RecordsUpdate applies the provided flags as a partial update.
func (r *Runner) RecordsUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	var fields models.RecordUpdate
	if cmd.IsSet("artist") {
		v := cmd.String("artist")
		fields.Artist = &v
	}
	if cmd.IsSet("title") {
		v := cmd.String("title")
		fields.Title = &v
	}
	if cmd.IsSet("year") {
		v := int(cmd.Int("year"))
		fields.Year = &v
	}
	if cmd.IsSet("format") {
		v := cmd.String("format")
		fields.Format = &v
	}
	if cmd.IsSet("cover") {
		v := cmd.String("cover")
		fields.CoverURL = &v
	}
	if cmd.IsSet("notes") {
		v := cmd.String("notes")
		fields.Notes = &v
	}
	if cmd.IsSet("owned") {
		v := cmd.Bool("owned")
		fields.Owned = &v
	}
	if cmd.IsSet("wishlist") {
		v := cmd.Bool("wishlist")
		fields.Wishlist = &v
	}

	if fields.IsZero() {
		return fmt.Errorf("%w: no fields to update", shared.ErrMissingArgument)
	}

	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := coll.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	r.logger.Info("record updated", "id", updated.ID)
	return r.writePlain("✓ updated %s\n", updated.Label())
}

// RecordsDelete removes a record from the collection.
func (r *Runner) RecordsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := coll.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	r.logger.Info("record deleted", "id", id)
	return r.writePlain("✓ deleted %s\n", id)
}

// RecordsFavorite toggles the favorite flag of a record.
func (r *Runner) RecordsFavorite(ctx context.Context, cmd *cli.Command) error {
	return r.toggleFlag(ctx, cmd, "favorite", func(coll *records.Collection, id string) (models.Record, error) {
		return coll.ToggleFavorite(ctx, id)
	})
}

// RecordsOrdered toggles the ordered flag of a record.
func (r *Runner) RecordsOrdered(ctx context.Context, cmd *cli.Command) error {
	return r.toggleFlag(ctx, cmd, "ordered", func(coll *records.Collection, id string) (models.Record, error) {
		return coll.ToggleOrdered(ctx, id)
	})
}

func (r *Runner) toggleFlag(ctx context.Context, cmd *cli.Command, name string, toggle func(*records.Collection, string) (models.Record, error)) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := toggle(coll, id)
	if err != nil {
		return fmt.Errorf("failed to toggle %s: %w", name, err)
	}

	state := map[string]bool{
		"favorite": updated.Favorite,
		"ordered":  updated.Ordered,
	}[name]
	return r.writePlain("✓ %s: %s = %v\n", updated.Label(), name, state)
}

// RecordsImport reads records from a JSON file and merges or replaces the collection.
func (r *Runner) RecordsImport(ctx context.Context, cmd *cli.Command) error {
	mode, err := models.ParseImportMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	recs, err := formatter.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	before := coll.Len()
	if err := coll.Import(ctx, recs, mode); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.logger.Info("import complete", "mode", mode, "imported", len(recs))
	return r.writePlain("✓ imported %d record(s) (%s), collection %d → %d\n",
		len(recs), mode, before, coll.Len())
}

// RecordsExport writes a view of the collection in the requested format.
func (r *Runner) RecordsExport(ctx context.Context, cmd *cli.Command) error {
	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	recs, err := viewRecords(coll, cmd.String("view"))
	if err != nil {
		return err
	}

	var data []byte
	format := strings.ToLower(cmd.String("format"))
	switch format {
	case "json":
		data, err = formatter.ExportToJSON(recs)
	case "csv":
		data, err = formatter.ExportToCSV(recs)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(recs, "Record Collection")
	case "text", "txt":
		data, err = formatter.ExportToText(recs)
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if output := cmd.String("output"); output != "" {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		return r.writePlain("✓ exported %d record(s) to %s\n", len(recs), output)
	}

	_, err = r.output.Write(data)
	return err
}
