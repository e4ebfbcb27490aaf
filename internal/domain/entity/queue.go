package entity

import (
	"strings"
	"time"
)

const CustomItemPrefix = "custom:"

// QueueEntry is one line of a user's recycling queue.
type QueueEntry struct {
	ItemID         string       `json:"item_id"`
	Name           string       `json:"name"`
	Category       Category     `json:"category"`
	Custom         bool         `json:"custom"`
	Quantity       float64      `json:"quantity"`
	Unit           QuantityUnit `json:"unit"`
	UnitPrice      float64      `json:"unit_price"`
	EstimatedValue float64      `json:"estimated_value"`
	AddedAt        time.Time    `json:"added_at"`
}

// NewQueueEntry builds an entry at the default quantity: one unit, or the unit
// minimum when that is larger.
func NewQueueEntry(item CatalogItem, custom bool, now time.Time) QueueEntry {
	unit := item.Unit()
	quantity := 1.0
	if unit.Minimum > quantity {
		quantity = unit.Minimum
	}
	return QueueEntry{
		ItemID:         item.ID,
		Name:           item.Name,
		Category:       item.Category,
		Custom:         custom,
		Quantity:       quantity,
		Unit:           unit,
		UnitPrice:      item.UnitPrice,
		EstimatedValue: Round2(quantity * item.UnitPrice),
		AddedAt:        now,
	}
}

// WithQuantity returns a copy with the quantity and derived value replaced.
func (e QueueEntry) WithQuantity(q float64) QueueEntry {
	e.Quantity = q
	e.EstimatedValue = Round2(q * e.UnitPrice)
	return e
}

// TotalValue sums estimated values, rounded to two decimals.
func TotalValue(entries []QueueEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.EstimatedValue
	}
	return Round2(sum)
}

// IndexOf returns the position of itemID in entries, or -1.
func IndexOf(entries []QueueEntry, itemID string) int {
	for i, e := range entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}

// CloneEntries copies entries so later edits to the source are not visible.
func CloneEntries(entries []QueueEntry) []QueueEntry {
	if entries == nil {
		return []QueueEntry{}
	}
	out := make([]QueueEntry, len(entries))
	copy(out, entries)
	return out
}

// CustomItemID derives a stable id from an ad-hoc item name, so the same
// name added twice collides like a catalog id would.
func CustomItemID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return CustomItemPrefix + strings.TrimSuffix(b.String(), "-")
}

// QueueView is the read model returned to callers.
type QueueView struct {
	UserID     string       `json:"user_id"`
	Entries    []QueueEntry `json:"entries"`
	ItemCount  int          `json:"item_count"`
	TotalValue float64      `json:"total_value"`
}

func NewQueueView(userID string, entries []QueueEntry) QueueView {
	entries = CloneEntries(entries)
	return QueueView{
		UserID:     userID,
		Entries:    entries,
		ItemCount:  len(entries),
		TotalValue: TotalValue(entries),
	}
}
