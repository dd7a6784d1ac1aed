package document

import (
	"context"
	"fmt"

	"github.com/jpl-au/quire/internal/diff"
)

// Diff compares slug in version opts.From against opts.To (the active
// version when empty).
func (s *Service) Diff(ctx context.Context, slug string, opts diff.Options) (diff.Result, error) {
	to := opts.To
	if to == "" {
		st, err := s.State(ctx)
		if err != nil {
			return diff.Result{}, err
		}
		to = st.Version
	}
	if opts.From == "" {
		return diff.Result{}, fmt.Errorf("diff %s: source version required", slug)
	}

	old, err := s.ReadIn(ctx, opts.From, slug)
	if err != nil {
		return diff.Result{}, fmt.Errorf("diff %s: %w", slug, err)
	}
	cur, err := s.ReadIn(ctx, to, slug)
	if err != nil {
		return diff.Result{}, fmt.Errorf("diff %s: %w", slug, err)
	}
	return diff.Compute(old.Body, cur.Body, diff.Label(opts.From, slug), diff.Label(to, slug)), nil
}
