package extraction

import "context"

// MockWarning is returned with every degraded-mode result so the UI can
// label the placeholder rows.
const MockWarning = "Using mock data. Configure GOOGLE_API_KEY or GEMINI_API_KEY to enable extraction."

// Mock is the degraded no-credential backend. It ignores the image entirely
// and returns a fixed, clearly labeled two-row result so the rest of the
// pipeline (table editing, export) stays usable without an API key.
type Mock struct{}

// NewMock creates the degraded-mode Extractor
func NewMock() *Mock {
	return &Mock{}
}

// Extract returns the fixed placeholder rows regardless of input
func (m *Mock) Extract(ctx context.Context, imageData []byte, contentType string) (*Result, error) {
	return &Result{
		Mock:    true,
		Warning: MockWarning,
		Items: []LineItem{
			{Date: "Dec 09, 2025", Qty: "10", Unit: "pcs", Item: "Example Item A (Mock)", DRNumber: "R-0315"},
			{Date: "Dec 09, 2025", Qty: "5", Unit: "box", Item: "Example Item B (Mock)", DRNumber: "R-0315"},
		},
	}, nil
}

// Close is a no-op
func (m *Mock) Close() error {
	return nil
}
