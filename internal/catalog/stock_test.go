package catalog

import (
	"errors"
	"testing"
)

func TestCheckInStock(t *testing.T) {
	stock := NewStockCatalog()

	result, err := stock.Check("Amoxicillin")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Available {
		t.Error("expected Amoxicillin to be available")
	}
	if result.Units != 100 {
		t.Errorf("expected 100 units, got %d", result.Units)
	}
	if len(result.Alternatives) != 0 {
		t.Errorf("expected no alternatives for in-stock medication, got %v", result.Alternatives)
	}
}

func TestCheckOutOfStock(t *testing.T) {
	stock := NewStockCatalog()

	result, err := stock.Check("Ibuprofen")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Available {
		t.Error("expected Ibuprofen to be out of stock")
	}
	if len(result.Alternatives) == 0 {
		t.Fatal("expected alternatives for out-of-stock medication")
	}
	// Alternatives carry only in-stock medications, in catalog order.
	if result.Alternatives[0] != "Amoxicillin" {
		t.Errorf("expected catalog order, got %v", result.Alternatives)
	}
	for _, alt := range result.Alternatives {
		if alt == "Ibuprofen" {
			t.Error("alternatives must not include the out-of-stock medication")
		}
	}
}

func TestCheckNormalizesCapitalization(t *testing.T) {
	stock := NewStockCatalog()

	result, err := stock.Check("  lisinoPRIL ")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Medication != "Lisinopril" {
		t.Errorf("expected normalized name, got %q", result.Medication)
	}
}

func TestCheckUnknownMedication(t *testing.T) {
	stock := NewStockCatalog()

	_, err := stock.Check("Unobtainium")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"ibuprofen": "Ibuprofen",
		"IBUPROFEN": "Ibuprofen",
		" aspirin ": "Aspirin",
		"":          "",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
