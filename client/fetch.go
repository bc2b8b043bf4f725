package client

import (
	"context"
	"fmt"

	"github.com/calehh/dao-app/types"
	"golang.org/x/sync/errgroup"
)

// FetchAllProposals reads proposals 0..N-1, N being the cached proposal
// count. The cached list is replaced only when every read succeeded; one
// failure discards the whole batch. With a fetch concurrency of 1 the reads
// are issued one at a time in ascending id order.
func (s *Session) FetchAllProposals(ctx context.Context) ([]types.Proposal, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return nil, err
	}
	s.mtx.Lock()
	n := s.numProposals
	s.mtx.Unlock()

	proposals := make([]types.Proposal, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)
	for i := uint64(0); i < n; i++ {
		id := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := r.Proposal(gctx, id)
			if err != nil {
				return fmt.Errorf("fetch proposal %d: %w", id, err)
			}
			p.ID = id
			proposals[id] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("fetch all proposals fail", "count", n, "err", err)
		return nil, err
	}

	s.mtx.Lock()
	s.proposals = proposals
	s.mtx.Unlock()
	s.logger.Debug("fetched proposals", "count", n)

	if s.recorder != nil {
		if err := s.recorder.SaveProposals(ctx, proposals, s.now()); err != nil {
			s.logger.Error("record proposals fail", "err", err)
		}
	}
	out := make([]types.Proposal, len(proposals))
	copy(out, proposals)
	return out, nil
}
