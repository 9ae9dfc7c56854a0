package openstack

import (
	"context"
	"fmt"
)

// Kind tags the eight resource categories the control plane can
// enumerate for us.
type Kind string

const (
	KindInstance        Kind = "instance"
	KindVolume          Kind = "volume"
	KindNetwork         Kind = "network"
	KindImage           Kind = "image"
	KindComputeService  Kind = "compute_service"
	KindNetworkAgent    Kind = "network_agent"
	KindVolumeService   Kind = "volume_service"
	KindIdentityService Kind = "identity_service"
)

// Credentials is the opaque auth bundle bound once at process startup.
type Credentials struct {
	AuthURL           string
	Username          string
	Password          string
	ProjectName       string
	UserDomainName    string
	ProjectDomainName string
}

// Lister enumerates resources of a kind under the stored credentials.
// List performs a single blocking attempt, no retry; endpoint listing is
// the secondary fetch identity-service projection needs per record.
type Lister interface {
	List(ctx context.Context, kind Kind) ([]Record, error)
	ListEndpoints(ctx context.Context, serviceID string) ([]Record, error)
}

func errUnsupportedKind(kind Kind) error {
	return fmt.Errorf("unsupported resource kind: %s", kind)
}
