package delivery

import (
	"time"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

// Extraction is one processed upload and its extracted rows. Items is the
// editable row set: each new upload produces a fresh Extraction, and cell
// edits mutate Items in place via the service. Mock and Warning mark results
// produced by the degraded no-credential backend.
type Extraction struct {
	ID          string                `json:"id"`
	Filename    string                `json:"filename"`
	ContentType string                `json:"content_type"`
	Mock        bool                  `json:"mock,omitempty"`
	Warning     string                `json:"warning,omitempty"`
	Items       []extraction.LineItem `json:"items"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
