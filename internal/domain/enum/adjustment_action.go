package enum

// AdjustmentAction is the per-item outcome of an inventory reconciliation
// pass during proforma conversion.
type AdjustmentAction string

const (
	AdjustmentCreated AdjustmentAction = "created"
	AdjustmentUpdated AdjustmentAction = "updated"
	AdjustmentSkipped AdjustmentAction = "skipped"
	AdjustmentFailed  AdjustmentAction = "failed"
)

func (a AdjustmentAction) String() string {
	return string(a)
}
