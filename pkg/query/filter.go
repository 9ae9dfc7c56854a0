package query

import (
	"strings"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
)

// Matches reports whether a record survives the filter. An empty filter
// matches everything. Name-like fields match as case-insensitive
// substrings, the id field as a case-sensitive substring; a declared
// field missing from the record simply fails that clause.
func Matches(rec openstack.Record, s Schema, filter string) bool {
	if filter == "" {
		return true
	}
	lower := strings.ToLower(filter)
	for _, field := range s.NameFields {
		if v, ok := rec[field].(string); ok && strings.Contains(strings.ToLower(v), lower) {
			return true
		}
	}
	if id, ok := rec["id"].(string); ok && strings.Contains(id, filter) {
		return true
	}
	return false
}
