package thingsurl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxBatchItems is the host application's limit for one json request.
const MaxBatchItems = 250

// ParseBatch decodes a batch payload and checks its shape.
func ParseBatch(data []byte) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: JSON data is empty", ErrInvalid)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrParse)
	}
	return ValidateBatch(v)
}

// ValidateBatch accepts only arrays of at most MaxBatchItems elements.
func ValidateBatch(v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON data must be an array", ErrInvalid)
	}
	if len(items) > MaxBatchItems {
		return nil, fmt.Errorf("%w: maximum %d items allowed per request, got %d", ErrInvalid, MaxBatchItems, len(items))
	}
	return items, nil
}

// JSON builds a json request from already validated items.
func (b Builder) JSON(items []any, reveal bool) (string, error) {
	if err := b.requireAuth(CmdJSON); err != nil {
		return "", err
	}
	if _, err := ValidateBatch(items); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	p := NewParams()
	p.Set("data", String(strings.TrimSuffix(buf.String(), "\n")))
	p.Set("auth-token", b.authValue())
	p.Set("reveal", Flag(reveal))
	return Build(CmdJSON, p), nil
}

// JSONData parses raw payload bytes and builds the request in one step.
func (b Builder) JSONData(data []byte, reveal bool) (string, error) {
	if err := b.requireAuth(CmdJSON); err != nil {
		return "", err
	}
	items, err := ParseBatch(data)
	if err != nil {
		return "", err
	}
	return b.JSON(items, reveal)
}
