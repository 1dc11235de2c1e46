package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ledger categories. The values are the labels persisted by earlier
// versions of the dashboard and must stay stable.
const (
	CategoryFlight          Category = "VOO"
	CategoryGroundTransport Category = "TRANSPORTE"
	CategoryLodging         Category = "HOSPEDAGEM"
	CategoryLeisure         Category = "LAZER"
	CategoryFood            Category = "ALIMENTAÇÃO"
	CategoryOther           Category = "OUTROS"
	CategoryItinerary       Category = "ROTEIRO"
	CategorySafari          Category = "SAFARI"
)

type (
	Category string

	// BudgetEntry is one line item of the trip ledger.
	BudgetEntry struct {
		ID          string   `json:"id"`
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Date        string   `json:"date"` // display label, never parsed
		Total       float64  `json:"total"`
		Notes       string   `json:"notes"`
	}

	// NewEntry carries the fields of a BudgetEntry that callers supply.
	// The ledger assigns the ID.
	NewEntry struct {
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Date        string   `json:"date"`
		Total       float64  `json:"total"`
		Notes       string   `json:"notes"`
	}
)

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// MaxDescriptionLen is the longest description accepted, in characters.
const MaxDescriptionLen = 200

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFlight,
		CategoryGroundTransport,
		CategoryLodging,
		CategoryLeisure,
		CategoryFood,
		CategoryOther,
		CategoryItinerary,
		CategorySafari,
	}
}

func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts either the stored label ("VOO") or its English
// alias ("flight", "ground-transport", ...), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrUnknownCategory
	}
	if c := Category(strings.ToUpper(s)); c.IsValid() {
		return c, nil
	}
	switch strings.ToLower(s) {
	case "flight":
		return CategoryFlight, nil
	case "ground-transport", "transport":
		return CategoryGroundTransport, nil
	case "lodging":
		return CategoryLodging, nil
	case "leisure":
		return CategoryLeisure, nil
	case "food", "alimentação", "alimentacao":
		return CategoryFood, nil
	case "other":
		return CategoryOther, nil
	case "itinerary":
		return CategoryItinerary, nil
	case "safari":
		return CategorySafari, nil
	}
	return "", ErrUnknownCategory
}

// Validate checks the fields the dashboard cannot render without.
// Amounts are not checked.
func (e NewEntry) Validate() error {
	if !e.Category.IsValid() {
		return ErrUnknownCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w (max %d characters)", ErrDescriptionTooLong, MaxDescriptionLen)
	}
	return nil
}

// WithID materializes the entry under the given id.
func (e NewEntry) WithID(id string) BudgetEntry {
	return BudgetEntry{
		ID:          id,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		Total:       e.Total,
		Notes:       e.Notes,
	}
}
