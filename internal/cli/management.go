package cli

import (
	"errors"

	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/domain/prescription"
)

func (s *Session) managementMenu() {
	for {
		s.printf("\nPlease select an option:\n")
		s.printf("1. Refill Medication\n")
		s.printf("2. Check Medication Availability\n")
		s.printf("3. Check Order Status\n")
		s.printf("4. Exit\n")

		choice, ok := s.prompt("Select the number: ")
		if !ok || choice == "4" {
			return
		}

		switch choice {
		case "1":
			s.refill()
		case "2":
			s.availability()
		case "3":
			s.orderStatus()
		default:
			s.printf("\nInvalid option. Please choose a valid option.\n")
		}
	}
}

func (s *Session) refill() {
	for {
		number, ok := s.prompt("Please enter your prescription number: ")
		if !ok || eqSentinel(number) {
			s.printf("Thank you for using WellBot!\n")
			return
		}

		name, ok := s.prompt("Please enter your full name: ")
		if !ok {
			return
		}

		confirmation, err := s.mgmt.Refill(number, name)
		if err != nil {
			if errors.Is(err, prescription.ErrNotFound) {
				s.printf("Invalid prescription number. Please try again or enter '%s' to exit.\n", ExitSentinel)
				continue
			}
			s.printf("Refill failed: %v\n", err)
			return
		}

		s.printf("\nOrder Summary:\n")
		s.printf("Prescription Number: %s\n", confirmation.Number)
		s.printf("Customer: %s\n", confirmation.Customer)
		s.printf("Medicine: %s %s\n", confirmation.Record.Medication, confirmation.Record.Dosage)
		s.printf("\nOrder placed! We will send you an email with the delivery information.\n")

		if !s.promptYes("\nWould you like to place another order? (y/n): ") {
			return
		}
	}
}

func (s *Session) availability() {
	for {
		name, ok := s.prompt("Please enter the name of the medicine you want to check: ")
		if !ok || eqSentinel(name) {
			s.printf("Exiting WellBot. Have a great day!\n")
			return
		}

		result, err := s.mgmt.CheckAvailability(name)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				s.printf("Sorry, we don't have %s in our inventory. Please try again or enter '%s' to exit.\n",
					catalog.NormalizeName(name), ExitSentinel)
				continue
			}
			s.printf("Availability check failed: %v\n", err)
			return
		}

		if result.Available {
			s.printf("%s is available, we have %d units in stock.\n", result.Medication, result.Units)
		} else {
			s.printf("Sorry, %s is currently out of stock.\n", result.Medication)
			if len(result.Alternatives) > 0 {
				s.printf("Here are some other available medications:\n")
				for _, med := range result.Alternatives {
					s.printf("- %s\n", med)
				}
			} else {
				s.printf("Unfortunately, we're currently out of stock for all medications.\n")
			}
		}

		if !s.promptYes("\nWould you like to check another medicine? (y/n): ") {
			s.printf("Thank you for using WellBot!\n")
			return
		}
	}
}

func (s *Session) orderStatus() {
	for {
		number, ok := s.prompt("Please enter your prescription number: ")
		if !ok || eqSentinel(number) {
			s.printf("Thank you for using WellBot!\n")
			return
		}

		report, err := s.mgmt.OrderStatus(number)
		if err != nil {
			if errors.Is(err, prescription.ErrNotFound) {
				s.printf("Invalid prescription number. Please try again or enter '%s' to exit.\n", ExitSentinel)
				continue
			}
			s.printf("Status lookup failed: %v\n", err)
			return
		}

		s.printf("\nThe order status for prescription number %s is: %s\n", report.Number, report.Status)
		s.printf("\nPrescription Details:\n")
		s.printRecord(report.Record)
		if report.NeedsSupport {
			s.printf("For further assistance, please contact our call center: %s\n", s.cfg.SupportPhone)
		}

		if !s.promptYes("\nWould you like to check another order? (y/n): ") {
			return
		}
	}
}
