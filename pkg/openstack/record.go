package openstack

import (
	"encoding/json"
	"fmt"
)

// Record is a raw resource record as returned by the control plane.
// Field presence varies by deployment and microversion, so lookups are
// always get-or-default and never assume a key exists.
type Record map[string]any

func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Record) Value(key string) any {
	return r[key]
}

// String returns the field rendered as a string, or def when the field
// is absent or nil.
func (r Record) String(key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Bool coerces a boolean field. The block storage API historically
// returns "true"/"false" strings for bootable, so string forms are
// accepted alongside genuine booleans.
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "True"
	default:
		return false
	}
}

// Float returns a numeric field as float64. JSON decoding hands every
// number over as float64, but int-typed values from struct conversion
// are accepted too.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toRecord converts an SDK struct into a Record via its JSON form,
// dropping null fields the way the upstream to_dict conversion does.
func toRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode resource: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	for k, val := range m {
		if val == nil {
			delete(m, k)
		}
	}
	return Record(m), nil
}
