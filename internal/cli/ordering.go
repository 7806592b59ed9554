package cli

import (
	"errors"
	"sort"

	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/domain/prescription"
	"github.com/wellca/wellbot/internal/service"
)

func (s *Session) orderingMenu() {
	s.printf("\nWelcome to the prescription ordering tab!\n")

	for {
		s.printf("1. Initiate Prescription Transfer (Incoming)\n")
		s.printf("2. Submit New Prescription\n")
		s.printf("3. Get Drug Price\n")
		s.printf("4. Exit\n")

		choice, ok := s.prompt("Select an option (1/2/3/4): ")
		if !ok || choice == "4" {
			return
		}

		switch choice {
		case "1":
			s.incomingTransfer()
		case "2":
			s.newPrescription()
		case "3":
			s.drugPrice()
		default:
			s.printf("Invalid choice. Please select 1, 2, 3 or 4.\n")
		}

		if !s.promptYes("Do you want to perform another action? (y/n): ") {
			s.printSummary()
			return
		}
	}
}

func (s *Session) incomingTransfer() {
	s.printf("\nInitiate Prescription Transfer (Incoming)\n")

	sendingPharmacy, ok := s.prompt("Enter the name of the sending pharmacy: ")
	if !ok || eqSentinel(sendingPharmacy) {
		return
	}
	telephone, ok := s.prompt("Enter the telephone number of the sending pharmacy: ")
	if !ok || eqSentinel(telephone) {
		return
	}

	record, err := s.ordering.SubmitIncomingTransfer(sendingPharmacy, telephone)
	if err != nil {
		s.printf("Transfer failed: %v\n", err)
		return
	}
	s.printf("Prescription %s initiated for transfer from %s. Telephone number: %s\n",
		record.Number, sendingPharmacy, telephone)
}

func (s *Session) newPrescription() {
	medication, ok := s.prompt("Enter the medication name: ")
	if !ok || eqSentinel(medication) {
		return
	}
	dosage, ok := s.prompt("Enter the dosage: ")
	if !ok {
		return
	}
	instructions, ok := s.prompt("Enter the instructions: ")
	if !ok {
		return
	}
	refills, ok := s.promptInt("Enter the number of refills: ")
	if !ok {
		return
	}

	faxNeeded := s.promptYes("Fax of prescription from doctor's office needed? (y/n): ")
	var telephone string
	if faxNeeded {
		telephone, ok = s.prompt("Enter the telephone number of the doctor's office: ")
		if !ok {
			return
		}
	}

	record, err := s.ordering.SubmitNewPrescription(service.NewPrescriptionInput{
		Medication:      medication,
		Dosage:          dosage,
		Instructions:    instructions,
		Refills:         refills,
		FaxNeeded:       faxNeeded,
		TelephoneNumber: telephone,
	})
	if err != nil {
		var verr *prescription.ValidationError
		if errors.As(err, &verr) {
			s.printf("Submission rejected: %v\n", verr)
		} else {
			s.printf("Submission failed: %v\n", err)
		}
		return
	}

	if record.FaxNeeded {
		s.printf("Prescription %s submitted successfully.\n", record.Number)
	} else {
		s.printf("Prescription %s submission pending. Upload a picture of your prescription to your account.\n",
			record.Number)
	}
}

func (s *Session) drugPrice() {
	medication, ok := s.prompt("Enter the medication name: ")
	if !ok || eqSentinel(medication) {
		return
	}
	rawCategory, ok := s.prompt("Select category (Public/Private Insurance): ")
	if !ok {
		return
	}
	category, err := catalog.ParseInsuranceCategory(rawCategory)
	if err != nil {
		s.printf("Invalid input or medication not found.\n")
		return
	}
	rawType, ok := s.prompt("Select medication type (Brand/Generic): ")
	if !ok {
		return
	}
	medType, err := catalog.ParseMedicationType(rawType)
	if err != nil {
		s.printf("Invalid input or medication not found.\n")
		return
	}
	hasRebate := s.promptYes("Do you have a manufacturer rebate? (y/n): ")

	price, err := s.ordering.QuotePrice(medication, category, medType, hasRebate)
	if err != nil {
		s.printf("Invalid input or medication not found.\n")
		return
	}
	s.printf("The price of %s %s under %s Insurance is $%.2f\n",
		medType, catalog.NormalizeName(medication), category, price)
}

// printSummary lists the durable prescription database when the user
// leaves the ordering tab, in stable number order.
func (s *Session) printSummary() {
	records := s.ordering.Snapshot()
	if len(records) == 0 {
		return
	}

	numbers := make([]string, 0, len(records))
	for number := range records {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	s.printf("\nPrescription Database:\n")
	for _, number := range numbers {
		s.printRecord(records[number])
		s.printf("--------------------\n")
	}
}

func (s *Session) printRecord(r prescription.Record) {
	s.printf("Prescription Number: %s\n", r.Number)
	s.printf("Medication: %s\n", r.Medication)
	s.printf("Dosage: %s\n", r.Dosage)
	s.printf("Instructions: %s\n", r.Instructions)
	s.printf("Refills: %d\n", r.Refills)
	s.printf("Sending Pharmacy: %s\n", r.SendingPharmacy)
	if r.FaxNeeded {
		s.printf("Fax Needed: Yes\n")
		s.printf("Telephone Number: %s\n", r.TelephoneNumber)
	} else {
		s.printf("Fax Needed: No\n")
	}
}
