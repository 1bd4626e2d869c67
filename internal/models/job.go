package models

import "time"

const (
	JobUpload      = "upload"
	JobLabel       = "label"
	JobBatchLabels = "batch_labels"
	JobPackingSlip = "packing_slip"
)

// Job is a journal entry for an upload or a generated document.
type Job struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Login     string    `json:"login"`
	OrderNum  string    `json:"order_num,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
