// Package cli implements the console interaction surface: numbered
// menus with free-text input per prompt. Every documented prompt
// accepts the 'x' exit sentinel, and EOF on stdin is treated the same
// way so piped sessions terminate cleanly.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/auth"
	"github.com/wellca/wellbot/internal/config"
	"github.com/wellca/wellbot/internal/druginfo"
	"github.com/wellca/wellbot/internal/feedback"
	"github.com/wellca/wellbot/internal/service"
)

// ExitSentinel aborts the current operation when entered at a prompt.
const ExitSentinel = "x"

const title = "WellBot: Well.ca's Pharmacy Assistant"

// Session drives one console conversation. It owns references to every
// service it calls; nothing is reached through package-level state.
type Session struct {
	in  *bufio.Scanner
	out io.Writer

	cfg      *config.Config
	users    *auth.Store
	ordering *service.OrderingService
	mgmt     *service.ManagementService
	registry *druginfo.Client
	feedback *feedback.Log
	logger   *zap.Logger

	id       string
	username string
}

// New creates a console session reading from in and writing to out.
func New(
	in io.Reader,
	out io.Writer,
	cfg *config.Config,
	users *auth.Store,
	ordering *service.OrderingService,
	mgmt *service.ManagementService,
	registry *druginfo.Client,
	fb *feedback.Log,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		cfg:      cfg,
		users:    users,
		ordering: ordering,
		mgmt:     mgmt,
		registry: registry,
		feedback: fb,
		logger:   logger,
		id:       uuid.New().String(),
	}
}

// Run executes the session: banner, login or registration, then the
// welcome menu until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	border := strings.Repeat("=", len(title))
	s.printf("\n%s\n%s\n%s\n", border, title, border)

	s.logger.Info("session started", zap.String("session_id", s.id))
	defer s.logger.Info("session ended", zap.String("session_id", s.id))

	if !s.login() {
		return nil
	}
	s.printf("\nWelcome, %s!\n", s.username)
	s.welcomeLoop(ctx)
	return nil
}

func (s *Session) login() bool {
	for {
		s.printf("\n1. Login\n2. Register\n3. Exit\n")
		choice, ok := s.prompt("Enter your choice: ")
		if !ok || choice == "3" {
			s.printf("Thank you for using WellBot. Goodbye!\n")
			return false
		}

		switch choice {
		case "1":
			username, ok := s.prompt("Enter your username: ")
			if !ok {
				return false
			}
			password, ok := s.prompt("Enter your password: ")
			if !ok {
				return false
			}
			if s.users.Authenticate(username, password) {
				s.username = username
				return true
			}
			s.printf("Invalid username or password.\n")

		case "2":
			username, ok := s.prompt("Enter a username: ")
			if !ok {
				return false
			}
			password, ok := s.prompt("Enter a password: ")
			if !ok {
				return false
			}
			if err := s.users.Register(username, password); err != nil {
				s.printf("Registration failed: %v\n", err)
				continue
			}
			s.printf("Registration successful!\n")
			s.username = username
			return true

		default:
			s.printf("Invalid choice. Please choose a valid option.\n")
		}
	}
}

func (s *Session) welcomeLoop(ctx context.Context) {
	for {
		s.printf("\nWelcome menu options:\n")
		s.printf("1. Medication Order\n")
		s.printf("2. Prescription Management\n")
		s.printf("3. Medication Information Index\n")
		s.printf("4. Feedback/Improvement\n")
		s.printf("5. Exit\n")

		choice, ok := s.prompt("Enter your choice: ")
		if !ok || choice == "5" {
			s.printf("Thank you for using WellBot. Goodbye!\n")
			return
		}

		switch choice {
		case "1":
			s.orderingMenu()
		case "2":
			s.managementMenu()
		case "3":
			s.medicationInfoMenu(ctx)
		case "4":
			s.feedbackMenu(ctx)
		default:
			s.printf("Invalid choice. Please choose a valid option.\n")
		}
	}
}

// prompt reads one line. ok is false on EOF, which callers treat as an
// exit request.
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptYes asks a y/n question; anything but y/yes is no.
func (s *Session) promptYes(label string) bool {
	answer, ok := s.prompt(label)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// promptInt re-prompts until a non-negative integer or the exit
// sentinel is entered. ok is false on sentinel or EOF.
func (s *Session) promptInt(label string) (int, bool) {
	for {
		raw, ok := s.prompt(label)
		if !ok || strings.EqualFold(raw, ExitSentinel) {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.printf("Please enter a non-negative number, or '%s' to exit.\n", ExitSentinel)
			continue
		}
		return n, true
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// eqSentinel reports whether input is the exit sentinel.
func eqSentinel(input string) bool {
	return strings.EqualFold(input, ExitSentinel)
}
