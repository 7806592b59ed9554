package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wellca/wellbot/internal/auth"
	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/config"
	"github.com/wellca/wellbot/internal/domain/prescription"
	"github.com/wellca/wellbot/internal/druginfo"
	"github.com/wellca/wellbot/internal/feedback"
	"github.com/wellca/wellbot/internal/observability/metrics"
	"github.com/wellca/wellbot/internal/service"
)

type sessionFixture struct {
	store   *prescription.Store
	tracker *prescription.StatusTracker
	users   *auth.Store
	session func(in string) *Session
	out     *strings.Builder
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	dir := t.TempDir()
	m := metrics.New(prometheus.NewRegistry())
	cfg := &config.Config{
		SupportPhone: "1-866-640-3800",
		SupportEmail: "pharmacysupport@well.ca",
	}

	store := prescription.NewStore(filepath.Join(dir, "prescriptions.json"), nil)
	tracker := prescription.NewStatusTracker()
	users := auth.NewStore(filepath.Join(dir, "users.json"), nil)
	ordering := service.NewOrderingService(store, tracker, catalog.NewPricingCatalog(), m, nil)
	mgmt := service.NewManagementService(store, tracker, catalog.NewStockCatalog(), m, nil)
	registry := druginfo.NewClient("http://127.0.0.1:0", time.Second, m, nil)
	fb := feedback.NewLog(filepath.Join(dir, "ratings.json"), filepath.Join(dir, "improvements.json"),
		&feedback.LexiconClassifier{}, m, nil)

	out := &strings.Builder{}
	fx := &sessionFixture{store: store, tracker: tracker, users: users, out: out}
	fx.session = func(in string) *Session {
		return New(strings.NewReader(in), out, cfg, users, ordering, mgmt, registry, fb, nil)
	}
	return fx
}

// run drives one full session against a scripted stdin, one input per
// line, and returns everything printed.
func (fx *sessionFixture) run(t *testing.T, lines ...string) string {
	t.Helper()
	fx.out.Reset()
	session := fx.session(strings.Join(lines, "\n") + "\n")
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return fx.out.String()
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("output missing %q:\n%s", want, output)
	}
}

func TestSessionSubmitNewPrescription(t *testing.T) {
	fx := newSessionFixture(t)
	output := fx.run(t,
		"2",      // register
		"alice",  // username
		"secret", // password
		"1",      // medication order
		"2",      // submit new prescription
		"Lisinopril",
		"20mg",
		"Take once daily",
		"2", // refills
		"n", // fax needed
		"n", // another action
		"5", // exit
	)

	assertContains(t, output, "WellBot: Well.ca's Pharmacy Assistant")
	assertContains(t, output, "Registration successful!")
	assertContains(t, output, "Welcome, alice!")
	assertContains(t, output, "submission pending. Upload a picture of your prescription")
	assertContains(t, output, "Prescription Database:")
	assertContains(t, output, "Medication: Lisinopril")
	assertContains(t, output, "Thank you for using WellBot. Goodbye!")

	records := fx.store.Load()
	if len(records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(records))
	}
	for number, record := range records {
		if !prescription.NumberPattern.MatchString(number) {
			t.Errorf("malformed prescription number %q", number)
		}
		if record.Medication != "Lisinopril" || record.Refills != 2 {
			t.Errorf("unexpected record %+v", record)
		}
		if record.FaxNeeded {
			t.Error("fax must not be flagged for a direct submission")
		}
		if got := fx.tracker.Get(number); got != prescription.StatusPending {
			t.Errorf("expected pending status, got %q", got)
		}
	}
}

func TestSessionIncomingTransfer(t *testing.T) {
	fx := newSessionFixture(t)
	output := fx.run(t,
		"2",     // register
		"carol", // username
		"pw",    // password
		"1",     // medication order
		"1",     // incoming transfer
		"Shoppers Drug Mart",
		"416-555-0100",
		"n", // another action
		"5", // exit
	)

	assertContains(t, output, "initiated for transfer from Shoppers Drug Mart")
	assertContains(t, output, "Telephone number: 416-555-0100")

	records := fx.store.Load()
	if len(records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(records))
	}
	for _, record := range records {
		if record.SendingPharmacy != "Shoppers Drug Mart" {
			t.Errorf("unexpected sending pharmacy %q", record.SendingPharmacy)
		}
		if !record.FaxNeeded {
			t.Error("incoming transfers always require a fax")
		}
		if record.Medication == "" || record.Dosage == "" {
			t.Errorf("transfer record missing generated fields: %+v", record)
		}
	}
}

func TestSessionAvailabilityAlternatives(t *testing.T) {
	fx := newSessionFixture(t)
	output := fx.run(t,
		"2",   // register
		"bob", // username
		"pw",  // password
		"2",   // prescription management
		"2",   // check availability
		"Ibuprofen",
		"n", // check another
		"4", // exit management
		"5", // exit
	)

	assertContains(t, output, "Sorry, Ibuprofen is currently out of stock.")
	assertContains(t, output, "Here are some other available medications:")
	assertContains(t, output, "- Amoxicillin")
}

func TestSessionOrderStatusEscalation(t *testing.T) {
	fx := newSessionFixture(t)
	records := fx.store.Load()
	records["RX5151"] = prescription.Record{
		Number:          "RX5151",
		Medication:      "Losartan",
		Dosage:          "50mg",
		SendingPharmacy: prescription.DefaultSendingPharmacy,
	}
	if err := fx.store.Save(records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	fx.tracker.Set("RX5151", prescription.StatusCanceled)
	if err := fx.users.Register("dave", "pw"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	output := fx.run(t,
		"1",    // login
		"dave", // username
		"pw",   // password
		"2",    // prescription management
		"3",    // check order status
		"RX5151",
		"n", // check another
		"4", // exit management
		"5", // exit
	)

	assertContains(t, output, "The order status for prescription number RX5151 is: Canceled")
	assertContains(t, output, "please contact our call center: 1-866-640-3800")
	assertContains(t, output, "Medication: Losartan")
}

func TestSessionInvalidLoginThenExit(t *testing.T) {
	fx := newSessionFixture(t)
	output := fx.run(t,
		"1",     // login
		"ghost", // unknown user
		"pw",
		"3", // exit
	)

	assertContains(t, output, "Invalid username or password.")
	assertContains(t, output, "Thank you for using WellBot. Goodbye!")
	if got := fx.store.Load(); len(got) != 0 {
		t.Errorf("no records expected, found %d", len(got))
	}
}

func TestSessionEOFExitsCleanly(t *testing.T) {
	fx := newSessionFixture(t)
	output := fx.run(t) // single empty line, then EOF at the login prompt

	assertContains(t, output, "Thank you for using WellBot. Goodbye!")
}
