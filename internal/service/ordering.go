// Package service implements the prescription ordering and management
// services. Each service owns explicit references to the store, tracker,
// and catalogs it needs; there is no ambient shared state. Every
// read-then-write operation loads fresh from disk, mutates the mapping,
// and saves within the same call.
package service

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/domain/prescription"
	"github.com/wellca/wellbot/internal/observability/metrics"
)

// OrderingService creates prescription records for new submissions and
// incoming transfers, and answers price queries.
type OrderingService struct {
	store   *prescription.Store
	tracker *prescription.StatusTracker
	pricing *catalog.PricingCatalog
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewOrderingService creates an ordering service.
func NewOrderingService(
	store *prescription.Store,
	tracker *prescription.StatusTracker,
	pricing *catalog.PricingCatalog,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrderingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &OrderingService{
		store:   store,
		tracker: tracker,
		pricing: pricing,
		metrics: m,
		logger:  logger,
	}
}

// NewPrescriptionInput holds the fields of a direct submission.
type NewPrescriptionInput struct {
	Medication      string
	Dosage          string
	Instructions    string
	Refills         int
	FaxNeeded       bool
	TelephoneNumber string
}

// SubmitNewPrescription validates and persists a direct submission and
// seeds its delivery status to Pending. The telephone number is required
// when a fax is needed and must be absent otherwise; validation failures
// persist nothing.
func (s *OrderingService) SubmitNewPrescription(in NewPrescriptionInput) (*prescription.Record, error) {
	record := prescription.Record{
		Medication:      in.Medication,
		Dosage:          in.Dosage,
		Instructions:    in.Instructions,
		Refills:         in.Refills,
		SendingPharmacy: prescription.DefaultSendingPharmacy,
		FaxNeeded:       in.FaxNeeded,
		TelephoneNumber: in.TelephoneNumber,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.create(record)
	if err != nil {
		return nil, err
	}
	s.metrics.PrescriptionsCreated.Inc()
	s.logger.Info("prescription submitted",
		zap.String("number", saved.Number),
		zap.Bool("fax_needed", saved.FaxNeeded))
	return saved, nil
}

// SubmitIncomingTransfer records a prescription transferred in from
// another pharmacy. A fax is always needed for transfers, so the sending
// pharmacy's telephone number is mandatory. Medication details stand in
// for data arriving from the sending pharmacy.
func (s *OrderingService) SubmitIncomingTransfer(sendingPharmacy, telephoneNumber string) (*prescription.Record, error) {
	if sendingPharmacy == "" {
		return nil, &prescription.ValidationError{Field: "sending_pharmacy", Reason: "must not be empty"}
	}

	record := randomTransferData()
	record.SendingPharmacy = sendingPharmacy
	record.FaxNeeded = true
	record.TelephoneNumber = telephoneNumber
	if err := record.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.create(record)
	if err != nil {
		return nil, err
	}
	s.metrics.TransfersReceived.Inc()
	s.logger.Info("transfer initiated",
		zap.String("number", saved.Number),
		zap.String("sending_pharmacy", sendingPharmacy))
	return saved, nil
}

// create assigns a fresh number, persists the record, and seeds its
// delivery status. Load, mutate, and save happen inside this one call.
func (s *OrderingService) create(record prescription.Record) (*prescription.Record, error) {
	records := s.store.Load()
	record.Number = s.store.NextNumber(records)
	records[record.Number] = record

	if err := s.store.Save(records); err != nil {
		return nil, fmt.Errorf("persist prescription: %w", err)
	}
	s.tracker.Set(record.Number, prescription.StatusPending)
	return &record, nil
}

// QuotePrice answers a drug price query against the pricing catalog.
// Prices are two-decimal currency values; the manufacturer rebate for
// the medication type is subtracted when claimed.
func (s *OrderingService) QuotePrice(medication string, category catalog.InsuranceCategory, medType catalog.MedicationType, hasRebate bool) (float64, error) {
	price, err := s.pricing.Quote(medication, category, medType, hasRebate)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.metrics.CatalogMisses.Inc()
		}
		return 0, err
	}
	s.metrics.PriceQuotes.Inc()
	return price, nil
}

// Snapshot returns the current durable mapping, for the end-of-session
// prescription summary.
func (s *OrderingService) Snapshot() map[string]prescription.Record {
	return s.store.Load()
}

// randomTransferData produces stand-in medication details for an
// incoming transfer, mirroring what the sending pharmacy's feed would
// supply in production.
func randomTransferData() prescription.Record {
	return prescription.Record{
		Medication:   fmt.Sprintf("Medication_%d", rand.Intn(100)+1),
		Dosage:       fmt.Sprintf("%dmg", rand.Intn(20)+1),
		Instructions: fmt.Sprintf("Take %d times daily", rand.Intn(3)+1),
		Refills:      rand.Intn(6),
	}
}
