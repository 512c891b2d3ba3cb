package gridform

import "github.com/gridform/gridform/internal/model1"

// ComputeStatus derives a row status from its business key and its
// original snapshot. Rows without a key are always created.
func ComputeStatus(row model1.Row) model1.Status {
	if row.IsNew() {
		return model1.StatusCreated
	}
	if model1.IsBlank(row.Original, row.Fields) {
		return model1.StatusUnchanged
	}
	return model1.StatusModified
}
