package query

import (
	"context"
	"errors"
	"testing"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	records       map[openstack.Kind][]openstack.Record
	listErr       error
	endpoints     []openstack.Record
	endpointErr   error
	listCalls     int
	endpointCalls int
}

func (f *fakeLister) List(ctx context.Context, kind openstack.Kind) ([]openstack.Record, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records[kind], nil
}

func (f *fakeLister) ListEndpoints(ctx context.Context, serviceID string) ([]openstack.Record, error) {
	f.endpointCalls++
	if f.endpointErr != nil {
		return nil, f.endpointErr
	}
	return f.endpoints, nil
}

func threeVolumes() *fakeLister {
	return &fakeLister{records: map[openstack.Kind][]openstack.Record{
		openstack.KindVolume: {
			{"id": "v1", "name": "alpha", "status": "available", "size": 10},
			{"id": "v2", "name": "beta", "status": "in-use", "size": 20},
			{"id": "v3", "name": "gamma-alpha", "status": "error", "size": 5},
		},
	}}
}

func TestPipeline_FilterByName(t *testing.T) {
	p := NewPipeline(threeVolumes())
	results, err := p.Run(context.Background(), Request{
		Kind:   openstack.KindVolume,
		Filter: "alpha",
		Limit:  10,
		Tier:   TierBasic,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "v1", results[0]["id"])
	assert.Equal(t, "v3", results[1]["id"])
}

func TestPipeline_FilterByID(t *testing.T) {
	p := NewPipeline(threeVolumes())
	results, err := p.Run(context.Background(), Request{
		Kind:   openstack.KindVolume,
		Filter: "v2",
		Tier:   TierFull,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "beta", results[0]["name"])
	assert.Equal(t, "in-use", results[0]["status"])
	assert.Equal(t, 20, results[0]["size"])
}

func TestPipeline_LimitTruncatesAfterFiltering(t *testing.T) {
	p := NewPipeline(threeVolumes())
	results, err := p.Run(context.Background(), Request{
		Kind:  openstack.KindVolume,
		Limit: 1,
		Tier:  TierBasic,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0]["id"])
}

func TestPipeline_ZeroLimitFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-5))
	assert.Equal(t, 1, clampLimit(1))
}

func TestPipeline_NoMatchesIsNotAnError(t *testing.T) {
	p := NewPipeline(threeVolumes())
	results, err := p.Run(context.Background(), Request{
		Kind:   openstack.KindVolume,
		Filter: "does-not-exist",
		Tier:   TierDetailed,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPipeline_ListErrorPropagates(t *testing.T) {
	cause := errors.New("keystone unreachable")
	p := NewPipeline(&fakeLister{listErr: cause})
	_, err := p.Run(context.Background(), Request{Kind: openstack.KindVolume, Tier: TierBasic})
	assert.ErrorIs(t, err, cause)
}

func TestPipeline_UnknownKindRejected(t *testing.T) {
	p := NewPipeline(threeVolumes())
	_, err := p.Run(context.Background(), Request{Kind: "router", Tier: TierBasic})
	assert.Error(t, err)
}

func TestPipeline_IdentityEndpointsFetchedOncePerRecord(t *testing.T) {
	lister := &fakeLister{
		records: map[openstack.Kind][]openstack.Record{
			openstack.KindIdentityService: {
				{"id": "s1", "name": "keystone", "type": "identity", "enabled": true},
				{"id": "s2", "name": "nova", "type": "compute", "enabled": true},
			},
		},
		endpoints: []openstack.Record{
			{"id": "e1", "interface": "public", "region": "RegionOne", "url": "https://svc:443"},
		},
	}
	p := NewPipeline(lister)

	results, err := p.Run(context.Background(), Request{
		Kind: openstack.KindIdentityService,
		Tier: TierDetailed,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, lister.endpointCalls)
	assert.Equal(t, lister.endpoints, results[0]["endpoints"])
}

func TestPipeline_IdentityBasicSkipsEndpointFetch(t *testing.T) {
	lister := &fakeLister{
		records: map[openstack.Kind][]openstack.Record{
			openstack.KindIdentityService: {
				{"id": "s1", "name": "keystone", "type": "identity"},
			},
		},
	}
	p := NewPipeline(lister)

	results, err := p.Run(context.Background(), Request{
		Kind: openstack.KindIdentityService,
		Tier: TierBasic,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, lister.endpointCalls)
	assert.NotContains(t, results[0], "endpoints")
}

func TestPipeline_EndpointErrorPropagates(t *testing.T) {
	cause := errors.New("endpoint listing forbidden")
	lister := &fakeLister{
		records: map[openstack.Kind][]openstack.Record{
			openstack.KindIdentityService: {{"id": "s1", "name": "keystone", "type": "identity"}},
		},
		endpointErr: cause,
	}
	p := NewPipeline(lister)

	_, err := p.Run(context.Background(), Request{Kind: openstack.KindIdentityService, Tier: TierFull})
	assert.ErrorIs(t, err, cause)
}

func TestPipeline_CanceledContextReturnsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	lister := &blockingLister{release: block}
	p := NewPipeline(lister)

	_, err := p.Run(ctx, Request{Kind: openstack.KindVolume, Tier: TierBasic})
	assert.ErrorIs(t, err, context.Canceled)
	close(block)
}

type blockingLister struct {
	release chan struct{}
}

func (b *blockingLister) List(ctx context.Context, kind openstack.Kind) ([]openstack.Record, error) {
	<-b.release
	return nil, nil
}

func (b *blockingLister) ListEndpoints(ctx context.Context, serviceID string) ([]openstack.Record, error) {
	return nil, nil
}
