package query

import (
	"fmt"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
)

// DetailTier selects how much of a record a query projects.
type DetailTier string

const (
	TierBasic    DetailTier = "basic"
	TierDetailed DetailTier = "detailed"
	TierFull     DetailTier = "full"
)

func ParseTier(s string) (DetailTier, error) {
	switch s {
	case "", string(TierDetailed):
		return TierDetailed, nil
	case string(TierBasic):
		return TierBasic, nil
	case string(TierFull):
		return TierFull, nil
	default:
		return "", fmt.Errorf("invalid detail level: %s", s)
	}
}

// RenderHint tells the formatter how a field value becomes a line.
type RenderHint int

const (
	RenderText RenderHint = iota
	RenderYesNo
	RenderActiveInactive
	RenderEnabledDisabled
	RenderSizeGB
	RenderSizeBytes
	RenderSizeMB
	RenderJSON
	RenderStringList
	RenderEndpoints
)

// FieldSpec describes one curated field of a kind's projection. A spec
// with an empty Label is projected but never printed. Sentinel replaces
// absent or empty values on headline lines; tier-gated lines are simply
// dropped when the field is absent.
type FieldSpec struct {
	Key       string
	Label     string
	Render    RenderHint
	Sentinel  string
	SkipEmpty bool
}

// Schema is the per-kind descriptor driving filtering, projection,
// formatting and tool registration. One table entry replaces one of the
// eight near-identical upstream handler modules.
type Schema struct {
	Kind        openstack.Kind
	Tool        string
	Singular    string
	Plural      string
	Description string
	FilterHint  string

	// NameFields are matched case-insensitively against the filter;
	// the id field is always matched case-sensitively in addition.
	NameFields []string

	Basic    []FieldSpec
	Detailed []FieldSpec

	// NeedsEndpoints marks the identity-service secondary fetch at
	// non-basic tiers: one endpoint listing per projected record.
	NeedsEndpoints bool
}

var schemas = []Schema{
	{
		Kind:        openstack.KindInstance,
		Tool:        "get_instances",
		Singular:    "instance",
		Plural:      "instances",
		Description: "Get detailed information about OpenStack virtual machine instances",
		FilterHint:  "Filter by instance name or ID",
		NameFields:  []string{"name"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name", Sentinel: "unnamed"},
			{Key: "status", Label: "Status"},
		},
		Detailed: []FieldSpec{
			{Key: "created_at", Label: "Created"},
			{Key: "flavor_id", Label: "Flavor", SkipEmpty: true},
			{Key: "image_id"},
			{Key: "addresses", Label: "Addresses", Render: RenderJSON, SkipEmpty: true},
		},
	},
	{
		Kind:        openstack.KindVolume,
		Tool:        "get_volumes",
		Singular:    "volume",
		Plural:      "volumes",
		Description: "Get detailed information about OpenStack block storage (Cinder) volumes",
		FilterHint:  "Filter by volume name or ID",
		NameFields:  []string{"name"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name", Sentinel: "unnamed"},
			{Key: "status", Label: "Status"},
			{Key: "size", Label: "Size", Render: RenderSizeGB},
		},
		Detailed: []FieldSpec{
			{Key: "created_at", Label: "Created"},
			{Key: "volume_type", Label: "Volume type"},
			{Key: "bootable", Label: "Bootable", Render: RenderYesNo},
			{Key: "availability_zone", Label: "Availability zone"},
			{Key: "attachments", Label: "Attachments", Render: RenderJSON, SkipEmpty: true},
		},
	},
	{
		Kind:        openstack.KindNetwork,
		Tool:        "get_networks",
		Singular:    "network",
		Plural:      "networks",
		Description: "Get detailed information about OpenStack networks",
		FilterHint:  "Filter by network name or ID",
		NameFields:  []string{"name"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name", Sentinel: "unnamed"},
			{Key: "status", Label: "Status"},
			{Key: "shared", Label: "Shared", Render: RenderYesNo},
			{Key: "is_external", Label: "External", Render: RenderYesNo},
		},
		Detailed: []FieldSpec{
			{Key: "created_at", Label: "Created"},
			{Key: "mtu", Label: "MTU", SkipEmpty: true},
			{Key: "subnets", Label: "Subnets", Render: RenderStringList, SkipEmpty: true},
			{Key: "availability_zones", Label: "Availability zones", Render: RenderStringList, SkipEmpty: true},
			{Key: "project_id", Label: "Project ID"},
		},
	},
	{
		Kind:        openstack.KindImage,
		Tool:        "get_images",
		Singular:    "image",
		Plural:      "images",
		Description: "Get detailed information about OpenStack (Glance) images",
		FilterHint:  "Filter by image name or ID",
		NameFields:  []string{"name"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name", Sentinel: "unnamed"},
			{Key: "status", Label: "Status"},
			{Key: "size", Label: "Size", Render: RenderSizeBytes},
			{Key: "disk_format", Label: "Format"},
		},
		Detailed: []FieldSpec{
			{Key: "container_format", Label: "Container format"},
			{Key: "min_disk", Label: "Min disk", Render: RenderSizeGB},
			{Key: "min_ram", Label: "Min RAM", Render: RenderSizeMB},
			{Key: "created_at", Label: "Created"},
			{Key: "updated_at"},
			{Key: "visibility", Label: "Visibility"},
			{Key: "protected", Label: "Protected", Render: RenderYesNo},
			{Key: "owner_id", Label: "Owner ID"},
		},
	},
	{
		Kind:        openstack.KindComputeService,
		Tool:        "get_compute_services",
		Singular:    "compute service",
		Plural:      "compute services",
		Description: "Get detailed information about OpenStack compute (Nova) services",
		FilterHint:  "Filter by service binary or host",
		NameFields:  []string{"binary", "host"},
		Basic: []FieldSpec{
			{Key: "id"},
			{Key: "binary", Label: "Service"},
			{Key: "host", Label: "Host"},
			{Key: "state", Label: "State"},
		},
		Detailed: []FieldSpec{
			{Key: "status", Label: "Status"},
			{Key: "zone", Label: "Zone"},
			{Key: "updated_at", Label: "Updated"},
			{Key: "disabled_reason", Label: "Disabled reason", SkipEmpty: true},
		},
	},
	{
		Kind:        openstack.KindNetworkAgent,
		Tool:        "get_network_agents",
		Singular:    "network agent",
		Plural:      "network agents",
		Description: "Get detailed information about OpenStack network (Neutron) agents",
		FilterHint:  "Filter by agent type or host",
		NameFields:  []string{"agent_type", "host"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "agent_type", Label: "Type"},
			{Key: "host", Label: "Host"},
			{Key: "alive", Label: "Alive", Render: RenderActiveInactive},
		},
		Detailed: []FieldSpec{
			{Key: "admin_state_up", Label: "Admin state", Render: RenderEnabledDisabled},
			{Key: "binary", Label: "Binary"},
			{Key: "created_at"},
			{Key: "heartbeat_timestamp", Label: "Heartbeat"},
			{Key: "availability_zone", Label: "Availability zone", SkipEmpty: true},
		},
	},
	{
		Kind:        openstack.KindVolumeService,
		Tool:        "get_volume_services",
		Singular:    "volume service",
		Plural:      "volume services",
		Description: "Get detailed information about OpenStack block storage (Cinder) services",
		FilterHint:  "Filter by service binary or host",
		NameFields:  []string{"binary", "host"},
		Basic: []FieldSpec{
			{Key: "id"},
			{Key: "binary", Label: "Service"},
			{Key: "host", Label: "Host"},
			{Key: "state", Label: "State"},
		},
		Detailed: []FieldSpec{
			{Key: "status", Label: "Status"},
			{Key: "zone", Label: "Zone"},
			{Key: "updated_at", Label: "Updated"},
			{Key: "disabled_reason", Label: "Disabled reason", SkipEmpty: true},
			{Key: "frozen", Label: "Frozen", Render: RenderYesNo},
		},
	},
	{
		Kind:        openstack.KindIdentityService,
		Tool:        "get_services",
		Singular:    "service",
		Plural:      "services",
		Description: "Get detailed information about OpenStack identity (Keystone) services",
		FilterHint:  "Filter by service name or type",
		NameFields:  []string{"name", "type"},
		Basic: []FieldSpec{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name"},
			{Key: "type", Label: "Type"},
		},
		Detailed: []FieldSpec{
			{Key: "description", Label: "Description", SkipEmpty: true},
			{Key: "enabled", Label: "Enabled", Render: RenderEnabledDisabled},
			{Key: "endpoints", Label: "Endpoints", Render: RenderEndpoints, SkipEmpty: true},
		},
		NeedsEndpoints: true,
	},
}

// Schemas returns the kind table in registration order.
func Schemas() []Schema {
	return schemas
}

func SchemaFor(kind openstack.Kind) (Schema, bool) {
	for _, s := range schemas {
		if s.Kind == kind {
			return s, true
		}
	}
	return Schema{}, false
}
