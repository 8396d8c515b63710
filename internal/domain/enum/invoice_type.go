package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceType distinguishes money owed to the company from money it owes
type InvoiceType int

const (
	InvoiceTypeReceivable InvoiceType = 0
	InvoiceTypePayable    InvoiceType = 1
)

func (t InvoiceType) String() string {
	names := [...]string{"Receivable", "Payable"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Receivable"
	}
	return names[t]
}

func (t InvoiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *InvoiceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = InvoiceType(i)
		return nil
	}
	switch str {
	case "Receivable":
		*t = InvoiceTypeReceivable
	case "Payable":
		*t = InvoiceTypePayable
	}
	return nil
}

func (t InvoiceType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *InvoiceType) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceTypeReceivable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = InvoiceType(v)
	case int:
		*t = InvoiceType(v)
	}
	return nil
}
