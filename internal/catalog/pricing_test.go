package catalog

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuote(t *testing.T) {
	pricing := NewPricingCatalog()

	tests := []struct {
		name       string
		medication string
		category   InsuranceCategory
		medType    MedicationType
		hasRebate  bool
		want       float64
	}{
		{"aspirin brand public", "aspirin", InsurancePublic, TypeBrand, false, 30.0},
		{"aspirin brand public with rebate", "aspirin", InsurancePublic, TypeBrand, true, 26.8},
		{"aspirin generic private", "Aspirin", InsurancePrivate, TypeGeneric, false, 13.0},
		{"amoxicillin brand private", "AMOXICILLIN", InsurancePrivate, TypeBrand, false, 8.0},
		{"metformin generic public with rebate", "Metformin", InsurancePublic, TypeGeneric, true, 7.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Quote(tt.medication, tt.category, tt.medType, tt.hasRebate)
			if err != nil {
				t.Fatalf("quote failed: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("got %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestQuoteUnknownMedication(t *testing.T) {
	pricing := NewPricingCatalog()

	_, err := pricing.Quote("Unobtainium", InsurancePublic, TypeBrand, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseInsuranceCategory(t *testing.T) {
	if got, err := ParseInsuranceCategory(" public "); err != nil || got != InsurancePublic {
		t.Errorf("got (%q, %v)", got, err)
	}
	if got, err := ParseInsuranceCategory("PRIVATE"); err != nil || got != InsurancePrivate {
		t.Errorf("got (%q, %v)", got, err)
	}
	if _, err := ParseInsuranceCategory("corporate"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestParseMedicationType(t *testing.T) {
	if got, err := ParseMedicationType("brand"); err != nil || got != TypeBrand {
		t.Errorf("got (%q, %v)", got, err)
	}
	if got, err := ParseMedicationType("Generic"); err != nil || got != TypeGeneric {
		t.Errorf("got (%q, %v)", got, err)
	}
	if _, err := ParseMedicationType("biosimilar"); err == nil {
		t.Error("expected error for unknown type")
	}
}
