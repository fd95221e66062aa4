package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProformaStatus represents the lifecycle state of a proforma invoice.
// A proforma moves Pending -> Converted exactly once; Converted is terminal.
type ProformaStatus int

const (
	ProformaStatusPending   ProformaStatus = 0
	ProformaStatusConverted ProformaStatus = 1
)

func (s ProformaStatus) String() string {
	names := [...]string{"pending", "converted"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

func (s ProformaStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProformaStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProformaStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = ProformaStatusPending
	case "converted":
		*s = ProformaStatusConverted
	}
	return nil
}

func (s ProformaStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProformaStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProformaStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProformaStatus(v)
	case int:
		*s = ProformaStatus(v)
	}
	return nil
}
