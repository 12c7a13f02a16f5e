// Package timeline reconciles fetched sit-down state: deduplicates message
// rows, prunes typing indicators that are stale or already answered, and
// guards against out-of-order fetch responses.
package timeline

import (
	"sort"
	"sync"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"
)

// DedupeMessages removes duplicate rows by message id, keeping first
// occurrence, and returns the list in timeline order. Joined queries can
// produce the same row twice.
func DedupeMessages(messages []*entity.Message) []*entity.Message {
	seen := make(map[string]bool, len(messages))
	out := make([]*entity.Message, 0, len(messages))
	for _, m := range messages {
		key := m.Id.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Id.String() < out[j].Id.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// PruneIndicators drops indicators that are no longer credible:
//   - the member already posted a message after the indicator started, or
//   - the indicator is older than the staleness window, which recovers
//     from a client that crashed before clearing it.
func PruneIndicators(indicators []*entity.TypingIndicator, messages []*entity.Message, now time.Time) []*entity.TypingIndicator {
	out := make([]*entity.TypingIndicator, 0, len(indicators))
	for _, ind := range indicators {
		if now.Sub(ind.StartedAt) > constant.TypingIndicatorStaleAfter {
			continue
		}
		if answeredSince(ind, messages) {
			continue
		}
		out = append(out, ind)
	}
	return out
}

func answeredSince(ind *entity.TypingIndicator, messages []*entity.Message) bool {
	for _, m := range messages {
		if m.SenderType != constant.MessageSenderMember || m.SenderMemberId == nil {
			continue
		}
		if *m.SenderMemberId == ind.MemberId && m.CreatedAt.After(ind.StartedAt) {
			return true
		}
	}
	return false
}

// RequestGuard discards fetch responses that arrive after a newer request
// was issued, so an old response never clobbers newer state. It is a
// helper for timeline consumers (Go clients driving refetches off push
// events); the server itself has no stale-response problem and does not
// use it.
type RequestGuard struct {
	mu      sync.Mutex
	counter uint64
}

// Next issues a new request token, invalidating all earlier ones.
func (g *RequestGuard) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return g.counter
}

// Current reports whether token still belongs to the newest request.
func (g *RequestGuard) Current(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return token == g.counter
}
