package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents the channel a payment was made through.
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodCard     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodNone     PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"cash", "card", "transfer", "none"}
	if int(m) < 0 || int(m) >= len(names) {
		return "none"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentMethodCash
	case "card":
		*m = PaymentMethodCard
	case "transfer":
		*m = PaymentMethodTransfer
	case "none":
		*m = PaymentMethodNone
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
