package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft   InvoiceStatus = 0
	InvoiceStatusSent    InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
	InvoiceStatusOverdue InvoiceStatus = 3
	InvoiceStatusVoid    InvoiceStatus = 4
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Draft", "Sent", "Paid", "Overdue", "Void"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// CountsTowardReports reports whether invoices in this status contribute to
// totals, VAT returns and dashboards. Drafts and voided invoices do not.
func (s InvoiceStatus) CountsTowardReports() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPaid || s == InvoiceStatusOverdue
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Sent":
		*s = InvoiceStatusSent
	case "Paid":
		*s = InvoiceStatusPaid
	case "Overdue":
		*s = InvoiceStatusOverdue
	case "Void":
		*s = InvoiceStatusVoid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
