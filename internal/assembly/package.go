// Package assembly implements background exhibit package builds for Docket.
// A build downloads every exhibit document, compresses and stamps them,
// renders a cover page and table of contents, merges everything into a
// single PDF, and uploads the result to blob storage. Progress is tracked
// monotonically and can be watched while the build runs.
package assembly

import (
	"time"

	"github.com/google/uuid"
)

// Package statuses. Pending packages have been accepted but not started;
// running packages report step progress; completed, failed, and cancelled
// are terminal.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Build steps in execution order.
const (
	StepExtract  = "extract"
	StepCompress = "compress"
	StepNumber   = "number"
	StepTOC      = "toc"
	StepCover    = "cover"
	StepMerge    = "merge"
	StepFinalize = "finalize"
)

// stepCeilings maps each step to the progress percentage reached when the
// step completes. Progress within a step interpolates toward its ceiling.
var stepCeilings = map[string]int{
	StepExtract:  30,
	StepCompress: 45,
	StepNumber:   60,
	StepTOC:      70,
	StepCover:    80,
	StepMerge:    90,
	StepFinalize: 100,
}

// Package represents a persisted package build and, once completed, the
// stored artifact.
type Package struct {
	ID            uuid.UUID  `json:"id"`
	CaseID        uuid.UUID  `json:"case_id"`
	Status        string     `json:"status"`
	Step          string     `json:"step"`
	Progress      int        `json:"progress"`
	Message       string     `json:"message"`
	StorageKey    *string    `json:"storage_key"`
	PageCount     *int       `json:"page_count"`
	SizeBytes     *int64     `json:"size_bytes"`
	Error         string     `json:"error,omitempty"`
	DownloadCount int        `json:"download_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// Progress is a point-in-time snapshot of a build, delivered to watchers.
type Progress struct {
	PackageID uuid.UUID `json:"package_id"`
	Status    string    `json:"status"`
	Step      string    `json:"step"`
	Percent   int       `json:"percent"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
}

// Terminal reports whether a status ends a build.
func Terminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
