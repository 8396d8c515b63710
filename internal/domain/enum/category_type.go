package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CategoryType splits categories into the two sides of the ledger
type CategoryType int

const (
	CategoryTypeIncome  CategoryType = 0
	CategoryTypeExpense CategoryType = 1
)

func (t CategoryType) String() string {
	names := [...]string{"Income", "Expense"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Income"
	}
	return names[t]
}

func (t CategoryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CategoryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CategoryType(i)
		return nil
	}
	switch str {
	case "Income":
		*t = CategoryTypeIncome
	case "Expense":
		*t = CategoryTypeExpense
	}
	return nil
}

func (t CategoryType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CategoryType) Scan(value interface{}) error {
	if value == nil {
		*t = CategoryTypeIncome
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CategoryType(v)
	case int:
		*t = CategoryType(v)
	}
	return nil
}
