package query

import (
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
)

// Projected is the curated field mapping a query returns for one
// record. Built fresh per query, never mutated afterwards.
type Projected map[string]any

// Project reduces a raw record to the tier's curated field set.
// Headline fields fall back to their sentinel when absent; tier-gated
// fields are included only when present; full keeps every non-null
// field as delivered by the control plane.
func Project(rec openstack.Record, s Schema, tier DetailTier) Projected {
	if tier == TierFull {
		out := make(Projected, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}

	out := make(Projected, len(s.Basic)+len(s.Detailed))
	for _, f := range s.Basic {
		if v, ok := rec[f.Key]; ok && v != nil {
			out[f.Key] = v
			continue
		}
		out[f.Key] = sentinel(f)
	}
	if tier == TierBasic {
		return out
	}
	for _, f := range s.Detailed {
		if v, ok := rec[f.Key]; ok && v != nil {
			out[f.Key] = v
		}
	}
	return out
}

func sentinel(f FieldSpec) string {
	if f.Sentinel != "" {
		return f.Sentinel
	}
	return "unknown"
}
