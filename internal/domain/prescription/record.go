// Package prescription implements the prescription record, its durable
// file-backed store, and the in-process delivery status tracker.
package prescription

import (
	"errors"
	"fmt"
	"regexp"
)

// Delivery statuses reported by the fulfillment process. Any free-form
// status is accepted by the tracker; these are the ones the assistant
// reacts to.
const (
	StatusPending     = "Pending"
	StatusCompleted   = "Completed"
	StatusCanceled    = "Canceled"
	StatusOnHold      = "On Hold"
	StatusRescheduled = "Rescheduled"

	// DefaultStatus is reported for prescriptions the tracker has never
	// seen, e.g. after a restart.
	DefaultStatus = "Pending Delivery"
)

// DefaultSendingPharmacy marks direct submissions that did not arrive
// via a transfer.
const DefaultSendingPharmacy = "N/A"

// ErrNotFound indicates the referenced prescription number is absent
// from the store.
var ErrNotFound = errors.New("prescription not found")

// NumberPattern is the shape of a generated prescription number.
// The range widens when the base range is exhausted, so five or more
// digits are legal for stores holding thousands of records.
var NumberPattern = regexp.MustCompile(`^RX\d{4,}$`)

// Record is the durable entity representing one medication order,
// transfer, or submission.
type Record struct {
	Number          string `json:"prescription_number"`
	Medication      string `json:"medication"`
	Dosage          string `json:"dosage"`
	Instructions    string `json:"instructions"`
	Refills         int    `json:"refills"`
	SendingPharmacy string `json:"sending_pharmacy"`
	FaxNeeded       bool   `json:"fax_needed"`
	TelephoneNumber string `json:"telephone_number,omitempty"`
}

// ValidationError reports malformed prescription input. The operation
// that produced it re-prompts rather than aborting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the record invariants before it is persisted.
func (r *Record) Validate() error {
	if r.Medication == "" {
		return &ValidationError{Field: "medication", Reason: "must not be empty"}
	}
	if r.Refills < 0 {
		return &ValidationError{Field: "refills", Reason: "must not be negative"}
	}
	if r.FaxNeeded && r.TelephoneNumber == "" {
		return &ValidationError{Field: "telephone_number", Reason: "required when a fax is needed"}
	}
	if !r.FaxNeeded && r.SendingPharmacy == DefaultSendingPharmacy && r.TelephoneNumber != "" {
		return &ValidationError{Field: "telephone_number", Reason: "only accepted when a fax is needed"}
	}
	return nil
}

// Escalates reports whether a delivery status should direct the
// customer to live support.
func Escalates(status string) bool {
	switch status {
	case StatusCanceled, StatusOnHold, StatusRescheduled:
		return true
	}
	return false
}
