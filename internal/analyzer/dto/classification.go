package dto

import (
	"encoding/json"
	"fmt"

	"climate-narrative-analyzer/pkg/common"
)

// AxisResult is the outcome of one classification axis: either a flat set of
// string fields, or an error marker when the model call or response parsing
// failed. The two cases are mutually exclusive so downstream code cannot
// read a failed axis as classified data.
type AxisResult struct {
	Fields map[string]string
	Err    string
}

// ValidAxisResult wraps successfully parsed fields.
func ValidAxisResult(fields map[string]string) AxisResult {
	return AxisResult{Fields: fields}
}

// ErrorAxisResult wraps a per-axis failure message.
func ErrorAxisResult(msg string) AxisResult {
	return AxisResult{Err: msg}
}

// Failed reports whether this axis produced an error marker.
func (r AxisResult) Failed() bool {
	return r.Err != ""
}

// Label returns the value of a field, or the NONE sentinel when the axis
// failed or the field is absent.
func (r AxisResult) Label(field string) string {
	if r.Failed() {
		return common.SentinelNone
	}
	v, ok := r.Fields[field]
	if !ok || v == "" {
		return common.SentinelNone
	}
	return v
}

// MarshalJSON encodes a valid result as its fields and a failed one as
// {"error": message}, matching the stored document shape.
func (r AxisResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(map[string]string{"error": r.Err})
	}
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// UnmarshalJSON restores the valid/error split from a stored document. An
// object whose only key is "error" is an error marker.
func (r *AxisResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if msg, ok := raw["error"]; ok && len(raw) == 1 {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return err
		}
		*r = ErrorAxisResult(s)
		return nil
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			// Models occasionally emit numbers or booleans; keep them
			// as their literal text.
			s = string(v)
		}
		fields[k] = s
	}
	*r = ValidAxisResult(fields)
	return nil
}

// ArticleClassification groups the three axis results for one article.
type ArticleClassification struct {
	Characters AxisResult `json:"characters"`
	Action     AxisResult `json:"action"`
	Story      AxisResult `json:"story"`
}

// AxisResultFromJSON decodes an AxisResult stored in a JSON column.
func AxisResultFromJSON(data []byte) (AxisResult, error) {
	var r AxisResult
	if len(data) == 0 {
		return ErrorAxisResult("empty classification record"), nil
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return AxisResult{}, fmt.Errorf("failed to decode classification record: %w", err)
	}
	return r, nil
}
