package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSummary_EmptyResult(t *testing.T) {
	s := volumeSchema(t)
	out := FormatSummary(s, nil, TierDetailed)
	assert.Equal(t, "No OpenStack volumes found matching the criteria.", out)
}

func TestFormatSummary_BasicVolumeEntry(t *testing.T) {
	s := volumeSchema(t)
	results := []Projected{
		{"id": "v1", "name": "alpha", "status": "available", "size": 10},
		{"id": "v3", "name": "gamma-alpha", "status": "error", "size": 5},
	}
	out := FormatSummary(s, results, TierBasic)

	assert.True(t, strings.HasPrefix(out, "Found 2 OpenStack volumes:\n\n"))
	assert.Contains(t, out, "1. ID: v1\n   Name: alpha\n   Status: available\n   Size: 10 GB\n")
	assert.Contains(t, out, "2. ID: v3\n   Name: gamma-alpha\n   Status: error\n   Size: 5 GB\n")
	// basic never prints tier-gated lines
	assert.NotContains(t, out, "Bootable")
}

func TestFormatSummary_DetailedVolumeEntry(t *testing.T) {
	s := volumeSchema(t)
	results := []Projected{{
		"id":          "v2",
		"name":        "beta",
		"status":      "in-use",
		"size":        20,
		"created_at":  "2025-01-02T03:04:05Z",
		"volume_type": "ssd",
		"bootable":    "true",
	}}
	out := FormatSummary(s, results, TierDetailed)

	assert.Contains(t, out, "   Created: 2025-01-02T03:04:05Z\n")
	assert.Contains(t, out, "   Volume type: ssd\n")
	assert.Contains(t, out, "   Bootable: yes\n")
	// absent optional fields leave no line behind
	assert.NotContains(t, out, "Availability zone")
	assert.NotContains(t, out, "Attachments")
}

func TestFormatSummary_SentinelOnHeadline(t *testing.T) {
	s := volumeSchema(t)
	out := FormatSummary(s, []Projected{{"id": "v9", "status": "creating", "size": 1}}, TierBasic)
	assert.Contains(t, out, "   Name: unnamed\n")
}

func TestFormatSummary_ImageSizePromotion(t *testing.T) {
	s, ok := SchemaFor("image")
	require.True(t, ok)

	small := []Projected{{"id": "i1", "name": "cirros", "status": "active", "size": float64(13 * 1024 * 1024), "disk_format": "qcow2"}}
	out := FormatSummary(s, small, TierBasic)
	assert.Contains(t, out, "   Size: 13.00 MB\n")

	big := []Projected{{"id": "i2", "name": "ubuntu", "status": "active", "size": float64(3 * 1024 * 1024 * 1024), "disk_format": "qcow2"}}
	out = FormatSummary(s, big, TierBasic)
	assert.Contains(t, out, "   Size: 3.00 GB\n")
}

func TestFormatSummary_UnlabeledFieldsStayHidden(t *testing.T) {
	s, ok := SchemaFor("compute_service")
	require.True(t, ok)
	results := []Projected{{
		"id":     7,
		"binary": "nova-compute",
		"host":   "ctrl-01",
		"state":  "up",
		"status": "enabled",
		"zone":   "nova",
	}}
	out := FormatSummary(s, results, TierDetailed)

	assert.True(t, strings.Contains(out, "1. Service: nova-compute\n"))
	assert.Contains(t, out, "   Host: ctrl-01\n")
	assert.Contains(t, out, "   Status: enabled\n")
	assert.NotContains(t, out, "ID:")
}

func TestFormatSummary_AgentBoolTokens(t *testing.T) {
	s, ok := SchemaFor("network_agent")
	require.True(t, ok)
	results := []Projected{{
		"id":             "a1",
		"agent_type":     "L3 agent",
		"host":           "net-01",
		"alive":          true,
		"admin_state_up": false,
		"binary":         "neutron-l3-agent",
	}}
	out := FormatSummary(s, results, TierDetailed)

	assert.Contains(t, out, "   Alive: active\n")
	assert.Contains(t, out, "   Admin state: disabled\n")
}

func TestFormatSummary_EndpointsBlock(t *testing.T) {
	s, ok := SchemaFor("identity_service")
	require.True(t, ok)
	results := []Projected{{
		"id":      "s1",
		"name":    "keystone",
		"type":    "identity",
		"enabled": true,
		"endpoints": []any{
			map[string]any{"id": "e1", "interface": "public", "region": "RegionOne", "url": "https://keystone:5000"},
			map[string]any{"id": "e2", "interface": "internal", "region": "RegionOne", "url": "http://keystone:5000"},
		},
	}}
	out := FormatSummary(s, results, TierDetailed)

	assert.Contains(t, out, "   Endpoints: 2\n")
	assert.Contains(t, out, "     Endpoint 1: public - https://keystone:5000\n")
	assert.Contains(t, out, "     Endpoint 2: internal - http://keystone:5000\n")
}
