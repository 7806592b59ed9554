// Package catalog provides the static pricing and stock reference
// tables. Both are pure lookup tables seeded at construction; nothing
// in the assistant mutates them.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the medication is absent from a catalog. It is
// distinct from an out-of-stock condition, which is a successful lookup.
var ErrNotFound = errors.New("medication not in catalog")

// InsuranceCategory selects the payer column of the pricing table.
type InsuranceCategory string

const (
	InsurancePublic  InsuranceCategory = "Public"
	InsurancePrivate InsuranceCategory = "Private"
)

// MedicationType selects brand or generic pricing.
type MedicationType string

const (
	TypeBrand   MedicationType = "Brand"
	TypeGeneric MedicationType = "Generic"
)

// ParseInsuranceCategory normalizes free-text console input.
func ParseInsuranceCategory(s string) (InsuranceCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return InsurancePublic, nil
	case "private":
		return InsurancePrivate, nil
	}
	return "", fmt.Errorf("unknown insurance category %q", s)
}

// ParseMedicationType normalizes free-text console input.
func ParseMedicationType(s string) (MedicationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brand":
		return TypeBrand, nil
	case "generic":
		return TypeGeneric, nil
	}
	return "", fmt.Errorf("unknown medication type %q", s)
}

type priceEntry struct {
	medication     string
	brandPublic    float64
	brandPrivate   float64
	brandRebate    float64
	genericPublic  float64
	genericPrivate float64
	genericRebate  float64
}

// PricingCatalog is the static medication price table.
type PricingCatalog struct {
	entries []priceEntry
}

// NewPricingCatalog returns the catalog seeded with the provided drug
// pricing data.
func NewPricingCatalog() *PricingCatalog {
	return &PricingCatalog{entries: []priceEntry{
		{"Amoxicillin", 10.0, 8.0, 1.0, 5.0, 4.0, 0.5},
		{"Ibuprofen", 12.0, 10.0, 1.5, 6.0, 5.0, 0.7},
		{"Lisinopril", 15.0, 12.0, 1.8, 7.0, 6.0, 0.8},
		{"Metformin", 18.0, 14.0, 2.0, 8.0, 7.0, 0.9},
		{"Levothyroxine", 20.0, 16.0, 2.2, 9.0, 8.0, 1.0},
		{"Atorvastatin", 22.0, 18.0, 2.4, 10.0, 9.0, 1.1},
		{"Amlodipine", 24.0, 20.0, 2.6, 11.0, 10.0, 1.2},
		{"Omeprazole", 26.0, 22.0, 2.8, 12.0, 11.0, 1.3},
		{"Losartan", 28.0, 24.0, 3.0, 13.0, 12.0, 1.4},
		{"Aspirin", 30.0, 26.0, 3.2, 14.0, 13.0, 1.5},
	}}
}

// Quote looks up the price for a medication under the given insurance
// category and medication type. When hasRebate is set the manufacturer
// rebate for that type is subtracted from the base price. The match is
// case-insensitive; an unknown medication returns ErrNotFound.
func (c *PricingCatalog) Quote(medication string, category InsuranceCategory, medType MedicationType, hasRebate bool) (float64, error) {
	for _, e := range c.entries {
		if !strings.EqualFold(e.medication, medication) {
			continue
		}

		var price, rebate float64
		switch medType {
		case TypeBrand:
			rebate = e.brandRebate
			if category == InsurancePublic {
				price = e.brandPublic
			} else {
				price = e.brandPrivate
			}
		case TypeGeneric:
			rebate = e.genericRebate
			if category == InsurancePublic {
				price = e.genericPublic
			} else {
				price = e.genericPrivate
			}
		default:
			return 0, fmt.Errorf("unknown medication type %q", medType)
		}

		if hasRebate {
			price -= rebate
		}
		return price, nil
	}
	return 0, ErrNotFound
}
