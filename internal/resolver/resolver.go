package resolver

import (
	"context"
	"log/slog"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// TargetFetcher is the retrying fetch the resolver drives per shape.
// Per-shape retries are its job; the resolver's loop is across shapes.
type TargetFetcher interface {
	Fetch(ctx context.Context, target string) (*types.Response, error)
}

// Resolver tries the candidate shapes of a logical target in order and
// returns the first usable response.
type Resolver struct {
	fetcher TargetFetcher
	logger  *slog.Logger
}

// New creates a Resolver on top of the given retrying fetcher.
func New(f TargetFetcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetcher: f,
		logger:  logger.With("component", "resolver"),
	}
}

// Resolve fetches each shape in order until one yields an HTTP 200 that the
// accept callback (when non-nil) also approves. A shape failure of any class,
// rate limiting included, moves on to the next shape rather than re-trying
// the same shape. Exhausting every shape is a hard failure carrying the
// per-shape errors.
func (r *Resolver) Resolve(ctx context.Context, shapes []string, accept func(*types.Response) error) (*types.Response, error) {
	errs := make([]error, 0, len(shapes))

	for _, shape := range shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := r.fetcher.Fetch(ctx, shape)
		if err != nil {
			r.logger.Warn("candidate shape failed", "shape", shape, "error", err)
			errs = append(errs, err)
			continue
		}

		if accept != nil {
			if err := accept(resp); err != nil {
				r.logger.Warn("candidate shape not usable", "shape", shape, "error", err)
				errs = append(errs, err)
				continue
			}
		}

		return resp, nil
	}

	return nil, &types.NoCandidateError{Shapes: shapes, Errs: errs}
}
