package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/domain/prescription"
	"github.com/wellca/wellbot/internal/observability/metrics"
)

// ManagementService refills existing prescriptions, checks stock
// availability, and reports order status.
type ManagementService struct {
	store   *prescription.Store
	tracker *prescription.StatusTracker
	stock   *catalog.StockCatalog
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewManagementService creates a management service.
func NewManagementService(
	store *prescription.Store,
	tracker *prescription.StatusTracker,
	stock *catalog.StockCatalog,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ManagementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &ManagementService{
		store:   store,
		tracker: tracker,
		stock:   stock,
		metrics: m,
		logger:  logger,
	}
}

// OrderConfirmation bundles a refill request with the prescription it
// refers to. The refills counter is intentionally left untouched:
// a refill here is a request submission, and any counter mutation
// belongs to the fulfillment process.
type OrderConfirmation struct {
	Number   string
	Customer string
	Record   prescription.Record
}

// Refill places a refill request for an existing prescription. The
// store is read fresh; an unknown number returns
// prescription.ErrNotFound and nothing is mutated.
func (s *ManagementService) Refill(number, customerName string) (*OrderConfirmation, error) {
	records := s.store.Load()
	record, ok := records[number]
	if !ok {
		return nil, prescription.ErrNotFound
	}

	s.metrics.RefillRequests.Inc()
	s.logger.Info("refill requested",
		zap.String("number", number),
		zap.String("customer", customerName))

	return &OrderConfirmation{
		Number:   number,
		Customer: customerName,
		Record:   record,
	}, nil
}

// CheckAvailability reports the stock position for a medication. An
// unknown medication returns catalog.ErrNotFound, distinct from a known
// medication that is out of stock.
func (s *ManagementService) CheckAvailability(name string) (*catalog.AvailabilityResult, error) {
	result, err := s.stock.Check(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.metrics.CatalogMisses.Inc()
		}
		return nil, err
	}
	return result, nil
}

// StatusReport combines the tracked delivery status with the full
// prescription record. NeedsSupport directs the customer to the call
// center for statuses the assistant cannot act on.
type StatusReport struct {
	Number       string
	Status       string
	NeedsSupport bool
	Record       prescription.Record
}

// OrderStatus reports the delivery status for a prescription number.
// The number must exist in the store; the tracker supplies the status,
// falling back to the default for numbers it has never seen.
func (s *ManagementService) OrderStatus(number string) (*StatusReport, error) {
	records := s.store.Load()
	record, ok := records[number]
	if !ok {
		return nil, prescription.ErrNotFound
	}

	status := s.tracker.Get(number)
	s.metrics.StatusLookups.Inc()

	return &StatusReport{
		Number:       number,
		Status:       status,
		NeedsSupport: prescription.Escalates(status),
		Record:       record,
	}, nil
}
