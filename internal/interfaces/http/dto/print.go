package dto

import (
	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/printing"
)

// QueueOverviewResponse pairs the property's printers with job counts
// per status.
type QueueOverviewResponse struct {
	Printers []hardware.Printer           `json:"printers"`
	Jobs     map[printing.JobStatus]int64 `json:"jobs"`
}
