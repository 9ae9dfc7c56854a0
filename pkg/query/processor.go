package query

import (
	"context"
	"fmt"
)

// Reporter is the progress side channel bound to the caller's request
// context. Notification delivery failures abort the request; this
// mirrors the behavior of the service this replaces.
type Reporter interface {
	Started(ctx context.Context, s Schema) error
	Succeeded(ctx context.Context, s Schema, count int) error
	Failed(ctx context.Context, s Schema, cause error) error
}

// Processor orchestrates one tool invocation: notify start, run the
// pipeline, notify outcome, and return either the formatted summary or
// a typed failure. No partial results.
type Processor struct {
	pipeline *Pipeline
	reporter Reporter
}

func NewProcessor(pipeline *Pipeline, reporter Reporter) *Processor {
	return &Processor{pipeline: pipeline, reporter: reporter}
}

func (p *Processor) Process(ctx context.Context, req Request) (string, error) {
	s, ok := SchemaFor(req.Kind)
	if !ok {
		return "", errUnsupportedKind(req.Kind)
	}

	if err := p.reporter.Started(ctx, s); err != nil {
		return "", fmt.Errorf("send start notification: %w", err)
	}

	results, err := p.pipeline.Run(ctx, req)
	if err != nil {
		qerr := &Error{Kind: s.Kind, Singular: s.Singular, Cause: err}
		if rerr := p.reporter.Failed(ctx, s, qerr); rerr != nil {
			return "", fmt.Errorf("send error notification: %w", rerr)
		}
		return "", qerr
	}

	if err := p.reporter.Succeeded(ctx, s, len(results)); err != nil {
		return "", fmt.Errorf("send success notification: %w", err)
	}
	return FormatSummary(s, results, req.Tier), nil
}
