package openstack

import (
	"context"
	"fmt"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	blocksvc "github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/services"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/volumes"
	computesvc "github.com/gophercloud/gophercloud/v2/openstack/compute/v2/services"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/endpoints"
	identitysvc "github.com/gophercloud/gophercloud/v2/openstack/identity/v3/services"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/agents"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/external"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/networks"
	"k8s.io/klog/v2"
)

// Client is a gophercloud-backed Lister. Every call authenticates a
// fresh connection with the stored credentials; connections are not
// pooled or reused across requests.
type Client struct {
	creds Credentials
}

func NewClient(creds Credentials) *Client {
	return &Client{creds: creds}
}

func (c *Client) connect(ctx context.Context) (*gophercloud.ProviderClient, error) {
	opts := gophercloud.AuthOptions{
		IdentityEndpoint: c.creds.AuthURL,
		Username:         c.creds.Username,
		Password:         c.creds.Password,
		DomainName:       c.creds.UserDomainName,
		Scope: &gophercloud.AuthScope{
			ProjectName: c.creds.ProjectName,
			DomainName:  c.creds.ProjectDomainName,
		},
	}
	provider, err := openstack.AuthenticatedClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("authenticate against %s: %w", c.creds.AuthURL, err)
	}
	return provider, nil
}

func (c *Client) List(ctx context.Context, kind Kind) ([]Record, error) {
	provider, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("Listing OpenStack %ss", kind)

	switch kind {
	case KindInstance:
		return c.listInstances(ctx, provider)
	case KindVolume:
		return c.listVolumes(ctx, provider)
	case KindNetwork:
		return c.listNetworks(ctx, provider)
	case KindImage:
		return c.listImages(ctx, provider)
	case KindComputeService:
		return c.listComputeServices(ctx, provider)
	case KindNetworkAgent:
		return c.listNetworkAgents(ctx, provider)
	case KindVolumeService:
		return c.listVolumeServices(ctx, provider)
	case KindIdentityService:
		return c.listIdentityServices(ctx, provider)
	default:
		return nil, errUnsupportedKind(kind)
	}
}

func (c *Client) ListEndpoints(ctx context.Context, serviceID string) ([]Record, error) {
	provider, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	client, err := openstack.NewIdentityV3(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create identity client: %w", err)
	}
	return listEndpointRecords(ctx, client, serviceID)
}

func (c *Client) listInstances(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewComputeV2(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create compute client: %w", err)
	}
	pages, err := servers.List(client, servers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	all, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, fmt.Errorf("extract servers: %w", err)
	}

	records := make([]Record, 0, len(all))
	for _, s := range all {
		rec, err := toRecord(s)
		if err != nil {
			return nil, err
		}
		// Nova reports created/updated without the _at suffix the
		// other services use; expose both spellings.
		setTime(rec, "created_at", s.Created)
		setTime(rec, "updated_at", s.Updated)
		if id, ok := s.Flavor["id"].(string); ok {
			rec["flavor_id"] = id
		}
		if img, ok := s.Image["id"].(string); ok {
			rec["image_id"] = img
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) listVolumes(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewBlockStorageV3(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create block storage client: %w", err)
	}
	pages, err := volumes.List(client, volumes.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}
	all, err := volumes.ExtractVolumes(pages)
	if err != nil {
		return nil, fmt.Errorf("extract volumes: %w", err)
	}
	return toRecords(all)
}

// networkWithExt carries the fields Neutron serves from extensions
// alongside the base network body.
type networkWithExt struct {
	networks.Network
	external.NetworkExternalExt
	MTU int `json:"mtu"`
}

func (c *Client) listNetworks(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewNetworkV2(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create network client: %w", err)
	}
	pages, err := networks.List(client, networks.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	var all []networkWithExt
	if err := networks.ExtractNetworksInto(pages, &all); err != nil {
		return nil, fmt.Errorf("extract networks: %w", err)
	}

	records := make([]Record, 0, len(all))
	for _, n := range all {
		rec, err := toRecord(n)
		if err != nil {
			return nil, err
		}
		// Stable alias for the extension-flagged boolean; the
		// original router:external key stays in place.
		rec["is_external"] = n.External
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) listImages(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewImageV2(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create image client: %w", err)
	}
	pages, err := images.List(client, images.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	all, err := images.ExtractImages(pages)
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	records := make([]Record, 0, len(all))
	for _, img := range all {
		rec, err := toRecord(img)
		if err != nil {
			return nil, err
		}
		if img.Owner != "" {
			rec["owner_id"] = img.Owner
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) listComputeServices(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewComputeV2(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create compute client: %w", err)
	}
	pages, err := computesvc.List(client, computesvc.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list compute services: %w", err)
	}
	all, err := computesvc.ExtractServices(pages)
	if err != nil {
		return nil, fmt.Errorf("extract compute services: %w", err)
	}
	return toRecords(all)
}

func (c *Client) listNetworkAgents(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewNetworkV2(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create network client: %w", err)
	}
	pages, err := agents.List(client, agents.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list network agents: %w", err)
	}
	all, err := agents.ExtractAgents(pages)
	if err != nil {
		return nil, fmt.Errorf("extract network agents: %w", err)
	}

	records := make([]Record, 0, len(all))
	for _, a := range all {
		rec, err := toRecord(a)
		if err != nil {
			return nil, err
		}
		// Agent timestamps use a non-RFC3339 wire format handled by a
		// custom decoder, so they do not survive the JSON round trip.
		setTime(rec, "created_at", a.CreatedAt)
		setTime(rec, "heartbeat_timestamp", a.HeartbeatTimestamp)
		setTime(rec, "started_at", a.StartedAt)
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) listVolumeServices(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewBlockStorageV3(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create block storage client: %w", err)
	}
	pages, err := blocksvc.List(client, blocksvc.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volume services: %w", err)
	}
	all, err := blocksvc.ExtractServices(pages)
	if err != nil {
		return nil, fmt.Errorf("extract volume services: %w", err)
	}
	return toRecords(all)
}

func (c *Client) listIdentityServices(ctx context.Context, provider *gophercloud.ProviderClient) ([]Record, error) {
	client, err := openstack.NewIdentityV3(provider, gophercloud.EndpointOpts{})
	if err != nil {
		return nil, fmt.Errorf("create identity client: %w", err)
	}
	pages, err := identitysvc.List(client, identitysvc.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list identity services: %w", err)
	}
	all, err := identitysvc.ExtractServices(pages)
	if err != nil {
		return nil, fmt.Errorf("extract identity services: %w", err)
	}

	records := make([]Record, 0, len(all))
	for _, s := range all {
		rec, err := toRecord(s)
		if err != nil {
			return nil, err
		}
		// Keystone keeps name and description in the extra blob.
		for k, v := range s.Extra {
			if v == nil {
				continue
			}
			if _, exists := rec[k]; !exists {
				rec[k] = v
			}
		}
		rec["enabled"] = s.Enabled
		records = append(records, rec)
	}
	return records, nil
}

func listEndpointRecords(ctx context.Context, client *gophercloud.ServiceClient, serviceID string) ([]Record, error) {
	pages, err := endpoints.List(client, endpoints.ListOpts{ServiceID: serviceID}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list endpoints for service %s: %w", serviceID, err)
	}
	all, err := endpoints.ExtractEndpoints(pages)
	if err != nil {
		return nil, fmt.Errorf("extract endpoints: %w", err)
	}
	records := make([]Record, 0, len(all))
	for _, ep := range all {
		records = append(records, Record{
			"id":        ep.ID,
			"interface": string(ep.Availability),
			"region":    ep.Region,
			"url":       ep.URL,
		})
	}
	return records, nil
}

func toRecords[T any](items []T) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec, err := toRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func setTime(rec Record, key string, t time.Time) {
	if t.IsZero() {
		return
	}
	rec[key] = t.UTC().Format(time.RFC3339)
}
