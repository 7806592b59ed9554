package catalog

import (
	"strings"
	"unicode"
)

type stockEntry struct {
	medication string
	units      int
}

// AvailabilityResult reports the stock position for one medication.
// When the medication is out of stock, Alternatives lists every catalog
// entry with stock remaining, in catalog order.
type AvailabilityResult struct {
	Medication   string
	Available    bool
	Units        int
	Alternatives []string
}

// StockCatalog is the static medication inventory table.
type StockCatalog struct {
	entries []stockEntry
}

// NewStockCatalog returns the catalog seeded with current inventory.
func NewStockCatalog() *StockCatalog {
	return &StockCatalog{entries: []stockEntry{
		{"Amoxicillin", 100},
		{"Ibuprofen", 0},
		{"Lisinopril", 150},
		{"Metformin", 120},
		{"Levothyroxine", 80},
		{"Atorvastatin", 90},
		{"Amlodipine", 110},
		{"Omeprazole", 130},
		{"Losartan", 140},
	}}
}

// Check looks up a medication by capitalization-normalized name. An
// unknown medication returns ErrNotFound; a known medication with zero
// stock returns Available=false plus in-stock alternatives.
func (c *StockCatalog) Check(name string) (*AvailabilityResult, error) {
	normalized := NormalizeName(name)
	for _, e := range c.entries {
		if !strings.EqualFold(e.medication, normalized) {
			continue
		}
		if e.units > 0 {
			return &AvailabilityResult{
				Medication: e.medication,
				Available:  true,
				Units:      e.units,
			}, nil
		}
		return &AvailabilityResult{
			Medication:   e.medication,
			Alternatives: c.inStock(),
		}, nil
	}
	return nil, ErrNotFound
}

// inStock lists every medication with stock remaining, in catalog order.
func (c *StockCatalog) inStock() []string {
	var available []string
	for _, e := range c.entries {
		if e.units > 0 {
			available = append(available, e.medication)
		}
	}
	return available
}

// NormalizeName capitalizes the first letter and lowercases the rest,
// matching how medication names are stored in the catalogs.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
