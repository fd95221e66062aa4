package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a transaction-level discount is interpreted.
type DiscountType int

const (
	DiscountTypeNone        DiscountType = 0
	DiscountTypePercentage  DiscountType = 1
	DiscountTypeFixedAmount DiscountType = 2
)

func (d DiscountType) String() string {
	// Wire labels match the existing API contract.
	names := [...]string{"None", "Percentage", "Fixed Amount"}
	if int(d) < 0 || int(d) >= len(names) {
		return "None"
	}
	return names[d]
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	switch str {
	case "None":
		*d = DiscountTypeNone
	case "Percentage":
		*d = DiscountTypePercentage
	case "Fixed Amount":
		*d = DiscountTypeFixedAmount
	}
	return nil
}

func (d DiscountType) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*d = DiscountTypeNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = DiscountType(v)
	case int:
		*d = DiscountType(v)
	}
	return nil
}
