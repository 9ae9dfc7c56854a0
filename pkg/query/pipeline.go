package query

import (
	"context"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/common"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
	"github.com/samber/lo"
)

// DefaultLimit caps the result count when a request does not set one.
const DefaultLimit = 100

// Request scopes one query: created per tool invocation, never reused.
type Request struct {
	Kind   openstack.Kind
	Filter string
	Limit  int
	Tier   DetailTier
}

// Pipeline composes fetch, filter, limit and projection into one
// asynchronous operation per request.
type Pipeline struct {
	lister openstack.Lister
}

func NewPipeline(lister openstack.Lister) *Pipeline {
	return &Pipeline{lister: lister}
}

// Run executes the query. The blocking control-plane enumeration runs
// on its own goroutine so concurrent requests are never serialized
// behind one network call; a caller that goes away leaves the fetch to
// finish on its own, which is why the worker gets an uncancelable
// context and a buffered result channel.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]Projected, error) {
	s, ok := SchemaFor(req.Kind)
	if !ok {
		return nil, errUnsupportedKind(req.Kind)
	}
	limit := clampLimit(req.Limit)

	type result struct {
		out []Projected
		err error
	}
	ch := make(chan result, 1)
	workCtx := context.WithoutCancel(ctx)

	go func() {
		records, err := p.lister.List(workCtx, req.Kind)
		if err != nil {
			ch <- result{nil, err}
			return
		}
		records = lo.Filter(records, func(rec openstack.Record, _ int) bool {
			return Matches(rec, s, req.Filter)
		})
		records = lo.Slice(records, 0, limit)

		out := make([]Projected, 0, len(records))
		for _, rec := range records {
			proj := Project(rec, s, req.Tier)
			if s.NeedsEndpoints && req.Tier != TierBasic {
				// One secondary fetch per surviving record; this is
				// the only projection with I/O.
				eps, err := p.lister.ListEndpoints(workCtx, rec.String("id", ""))
				if err != nil {
					ch <- result{nil, err}
					return
				}
				proj["endpoints"] = eps
			}
			out = append(out, proj)
		}
		ch <- result{out, nil}
	}()

	select {
	case r := <-ch:
		return r.out, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > common.QueryLimitMax {
		return common.QueryLimitMax
	}
	return limit
}
