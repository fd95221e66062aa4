package enum

import "encoding/json"

// TransactionType identifies which ledger a payment applies to. The wire
// values are part of the existing payments API contract.
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "sale"
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeExpense  TransactionType = "expense"
)

// Valid reports whether the value is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypePurchase, TransactionTypeExpense:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = TransactionType(str)
	return nil
}
