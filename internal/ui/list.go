package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/patrick-utz/sonorium/internal/models"
)

var _ list.Item = recordItem{}

// recordItem wraps [models.Record] to implement [list.Item].
type recordItem struct {
	record models.Record
	marked bool
}

func (i recordItem) FilterValue() string { return i.record.Artist + " " + i.record.Title }

func (i recordItem) Title() string {
	title := i.record.Label()
	if i.record.Favorite {
		title = "★ " + title
	}
	if i.marked {
		title = "✓ " + title
	}
	return title
}

func (i recordItem) Description() string {
	var parts []string
	if i.record.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", i.record.Year))
	}
	if i.record.Format != "" {
		parts = append(parts, i.record.Format)
	}
	switch {
	case i.record.Owned:
		parts = append(parts, "owned")
	case i.record.Wishlist:
		parts = append(parts, "wishlist")
	}
	if i.record.Ordered {
		parts = append(parts, "ordered")
	}
	return strings.Join(parts, " • ")
}
