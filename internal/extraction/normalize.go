package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseItems normalizes the raw text returned by an LLM backend into line
// items. It strips a single markdown code fence (a leading ` ```json ` or
// ` ``` ` and a trailing ` ``` `, with surrounding whitespace) and parses the
// remainder as a JSON object with an "items" array. No per-item schema
// validation is applied; missing fields simply come through empty.
//
// Already-clean JSON passes through unchanged, so the function is idempotent
// on its own successful output.
func ParseItems(raw string) ([]LineItem, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	itemsRaw, ok := payload["items"]
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("response has no 'items' property")}
	}

	var items []LineItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	return items, nil
}
