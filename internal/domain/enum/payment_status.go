package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents how much of a transaction's grand total is settled.
type PaymentStatus int

const (
	PaymentStatusPaid    PaymentStatus = 0
	PaymentStatusPartial PaymentStatus = 1
	PaymentStatusCredit  PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	names := [...]string{"paid", "partial", "credit"}
	if int(s) < 0 || int(s) >= len(names) {
		return "credit"
	}
	return names[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "paid":
		*s = PaymentStatusPaid
	case "partial":
		*s = PaymentStatusPartial
	case "credit":
		*s = PaymentStatusCredit
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusCredit
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
