package cli

import (
	"context"
	"errors"

	"github.com/wellca/wellbot/internal/druginfo"
)

func (s *Session) medicationInfoMenu(ctx context.Context) {
	for {
		name, ok := s.prompt("Enter the medication name: ")
		if !ok || eqSentinel(name) {
			return
		}

		label, err := s.registry.FetchLabel(ctx, name)
		if err != nil {
			switch {
			case errors.Is(err, druginfo.ErrNotFound):
				s.printf("Medication not found.\n")
			case errors.Is(err, druginfo.ErrUnavailable):
				s.printf("The medication information service is temporarily unavailable. Please try again later.\n")
			default:
				s.printf("Lookup failed: %v\n", err)
			}
			return
		}

		s.printf("Medication Name: %s\n", label.BrandName)
		s.printf("Manufacturer: %s\n", label.Manufacturer)

		if !s.labelMenu(label) {
			return
		}
	}
}

// labelMenu walks one fetched label. It returns true when the user
// wants to pick another medication, false to leave the index entirely.
func (s *Session) labelMenu(label *druginfo.Label) bool {
	for {
		s.printf("\nSelect the type of information you'd like to know:\n")
		s.printf("1. Dosage Information\n")
		s.printf("2. Allergy Information\n")
		s.printf("3. General Information/Interactions\n")
		s.printf("4. Go back to Medication Selection\n")
		s.printf("5. Exit\n")

		choice, ok := s.prompt("Enter your choice: ")
		if !ok || choice == "5" {
			return false
		}

		switch choice {
		case "1":
			s.printSection("Dosage and Administration", label.DosageAndAdministration,
				"Dosage information not available.")
		case "2":
			s.printSection("Allergy Information", label.Warnings,
				"Allergy information not available.")
		case "3":
			s.printSection("General Information", label.IndicationsAndUsage,
				"General information not available.")
			s.printSection("Drug Interactions", label.DrugInteractions,
				"Drug interactions information not available.")
		case "4":
			return true
		default:
			s.printf("Invalid choice.\n")
			continue
		}

		if !s.promptYes("Would you like more info? (y/n): ") {
			return false
		}
	}
}

func (s *Session) printSection(heading string, lines []string, emptyMsg string) {
	if len(lines) == 0 {
		s.printf("%s\n", emptyMsg)
		return
	}
	s.printf("%s:\n", heading)
	for _, line := range lines {
		s.printf("  - %s\n", line)
	}
}
