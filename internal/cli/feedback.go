package cli

import "context"

func (s *Session) feedbackMenu(ctx context.Context) {
	s.printf("\nThank you for providing feedback!\n")

	for {
		s.printf("\nFeedback/Improvement Options:\n")
		s.printf("1. Need further assistance (email/call pharmacy support)\n")
		s.printf("2. Rate our service (1-10)\n")
		s.printf("3. Review our service\n")
		s.printf("4. Exit\n")

		choice, ok := s.prompt("Enter your choice: ")
		if !ok || choice == "4" {
			return
		}

		switch choice {
		case "1":
			s.printf("For further assistance call us toll-free at %s or send an email to %s\n",
				s.cfg.SupportPhone, s.cfg.SupportEmail)
			s.printf("Monday-Friday: 9am - 10pm EST\n")
			s.printf("Saturday: 9am - 4pm EST\n")
			s.printf("Sunday: 10am - 5pm EST\n")
			return

		case "2":
			score, ok := s.promptInt("How would you rate our service (1-10)? ")
			if !ok {
				return
			}
			if _, err := s.feedback.AddRating(score); err != nil {
				s.printf("Could not store your rating: %v\n", err)
				continue
			}
			s.printf("You rated our service: %d\n", score)
			return

		case "3":
			suggestion, ok := s.prompt("How was your experience using our service? ")
			if !ok {
				return
			}
			review, err := s.feedback.AddReview(ctx, suggestion)
			if err != nil {
				s.printf("Could not store your review: %v\n", err)
				continue
			}
			s.printf("Feedback sentiment: %s\n", review.Sentiment)
			s.printf("Thank you for your input!\n")
			return

		default:
			s.printf("Invalid choice.\n")
		}
	}
}
