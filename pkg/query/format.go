package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
)

// FormatSummary renders a query result as a deterministic text block:
// a count line, then one 1-based enumerated entry per record with the
// kind's headline lines followed by the tier-gated lines.
func FormatSummary(s Schema, results []Projected, tier DetailTier) string {
	if len(results) == 0 {
		return fmt.Sprintf("No OpenStack %s found matching the criteria.", s.Plural)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d OpenStack %s:\n\n", len(results), s.Plural)
	for i, rec := range results {
		first := true
		for _, f := range s.Basic {
			if f.Label == "" {
				continue
			}
			line := renderHeadline(f, rec)
			if first {
				fmt.Fprintf(&b, "%d. %s: %s\n", i+1, f.Label, line)
				first = false
			} else {
				fmt.Fprintf(&b, "   %s: %s\n", f.Label, line)
			}
		}
		if tier != TierBasic {
			for _, f := range s.Detailed {
				if f.Label == "" {
					continue
				}
				v, ok := rec[f.Key]
				if !ok || v == nil {
					continue
				}
				if f.SkipEmpty && isEmpty(v) {
					continue
				}
				if f.Render == RenderEndpoints {
					writeEndpoints(&b, v)
					continue
				}
				fmt.Fprintf(&b, "   %s: %s\n", f.Label, renderValue(f.Render, v))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderHeadline(f FieldSpec, rec Projected) string {
	v, ok := rec[f.Key]
	if !ok || v == nil || v == "" {
		return sentinel(f)
	}
	return renderValue(f.Render, v)
}

func renderValue(hint RenderHint, v any) string {
	switch hint {
	case RenderYesNo:
		return boolToken(v, "yes", "no")
	case RenderActiveInactive:
		return boolToken(v, "active", "inactive")
	case RenderEnabledDisabled:
		return boolToken(v, "enabled", "disabled")
	case RenderSizeGB:
		if n, ok := asFloat(v); ok {
			return fmt.Sprintf("%s GB", compactNumber(n))
		}
		return fmt.Sprintf("%v", v)
	case RenderSizeMB:
		if n, ok := asFloat(v); ok {
			return fmt.Sprintf("%s MB", compactNumber(n))
		}
		return fmt.Sprintf("%v", v)
	case RenderSizeBytes:
		if n, ok := asFloat(v); ok {
			mb := n / (1024 * 1024)
			if mb > 1024 {
				return fmt.Sprintf("%.2f GB", mb/1024)
			}
			return fmt.Sprintf("%.2f MB", mb)
		}
		return fmt.Sprintf("%v", v)
	case RenderJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	case RenderStringList:
		return strings.Join(asStrings(v), ", ")
	default:
		if n, ok := asFloat(v); ok {
			return compactNumber(n)
		}
		return fmt.Sprintf("%v", v)
	}
}

// writeEndpoints renders the nested endpoint list the way the identity
// summary lays it out: a count, then one indented line per endpoint.
func writeEndpoints(b *strings.Builder, v any) {
	eps := asEndpoints(v)
	if len(eps) == 0 {
		return
	}
	fmt.Fprintf(b, "   Endpoints: %d\n", len(eps))
	for i, ep := range eps {
		fmt.Fprintf(b, "     Endpoint %d: %s - %s\n", i+1, ep.String("interface", ""), ep.String("url", ""))
	}
}

func asEndpoints(v any) []openstack.Record {
	switch list := v.(type) {
	case []openstack.Record:
		return list
	case []any:
		out := make([]openstack.Record, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, openstack.Record(m))
			}
		}
		return out
	default:
		return nil
	}
}

func boolToken(v any, yes, no string) string {
	switch b := v.(type) {
	case bool:
		if b {
			return yes
		}
	case string:
		// The block storage API reports bootable as a string; keep one
		// boolean rendering across all kinds.
		if b == "true" || b == "True" {
			return yes
		}
	}
	return no
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func compactNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

func asStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case []openstack.Record:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case float64:
		return val == 0
	case int:
		return val == 0
	case bool:
		return false
	default:
		return false
	}
}
