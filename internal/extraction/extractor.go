package extraction

import "context"

// LineItem is one extracted row of a delivery receipt. Every field is an
// opaque string copied verbatim from the model output; nothing is validated
// or range-checked here. Header fields (date, drNumber) are propagated to
// every row by the prompt, not enforced by code.
type LineItem struct {
	Date       string `json:"date"`
	Qty        string `json:"qty"`
	Unit       string `json:"unit"`
	Item       string `json:"item"`
	DRNumber   string `json:"drNumber"`
	Remarks    string `json:"remarks"`
	ReceivedBy string `json:"receivedBy"`
}

// Result is the outcome of one extraction call. Mock and Warning are set
// only by the degraded no-credential backend.
type Result struct {
	Items   []LineItem
	Mock    bool
	Warning string
}

// Extractor defines the interface for pulling line items out of a receipt
// image. Implementations make a single attempt per call; cancellation comes
// from the caller's context.
type Extractor interface {
	// Extract analyzes a receipt image/PDF and returns its line items
	Extract(ctx context.Context, imageData []byte, contentType string) (*Result, error)
	// Close releases any backend resources
	Close() error
}
