package timeline

import (
	"testing"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"

	"github.com/google/uuid"
)

func TestDedupeMessages(t *testing.T) {
	base := time.Now()
	first := &entity.Message{Id: uuid.New(), Content: "first", CreatedAt: base}
	second := &entity.Message{Id: uuid.New(), Content: "second", CreatedAt: base.Add(time.Second)}

	// A joined fetch produced the first row twice, out of order.
	out := DedupeMessages([]*entity.Message{second, first, first})

	if len(out) != 2 {
		t.Fatalf("got %d messages, want 2", len(out))
	}
	if out[0].Content != "first" || out[1].Content != "second" {
		t.Errorf("order = [%s, %s], want timeline order", out[0].Content, out[1].Content)
	}
}

func TestPruneIndicatorsStaleness(t *testing.T) {
	now := time.Now()
	memberId := uuid.New()

	indicators := []*entity.TypingIndicator{
		{Id: uuid.New(), MemberId: memberId, StartedAt: now.Add(-130 * time.Second)},
		{Id: uuid.New(), MemberId: uuid.New(), StartedAt: now.Add(-10 * time.Second)},
	}

	out := PruneIndicators(indicators, nil, now)
	if len(out) != 1 {
		t.Fatalf("got %d indicators, want the 130s-old one dropped", len(out))
	}
	if out[0].MemberId == memberId {
		t.Errorf("stale indicator survived pruning")
	}
}

func TestPruneIndicatorsAnswered(t *testing.T) {
	now := time.Now()
	memberId := uuid.New()
	started := now.Add(-30 * time.Second)

	indicators := []*entity.TypingIndicator{
		{Id: uuid.New(), MemberId: memberId, StartedAt: started},
	}
	messages := []*entity.Message{
		{
			Id:             uuid.New(),
			SenderType:     constant.MessageSenderMember,
			SenderMemberId: &memberId,
			CreatedAt:      started.Add(5 * time.Second),
		},
	}

	out := PruneIndicators(indicators, messages, now)
	if len(out) != 0 {
		t.Errorf("got %d indicators, want answered indicator dropped", len(out))
	}

	// A message from before the indicator started keeps it alive.
	messages[0].CreatedAt = started.Add(-5 * time.Second)
	out = PruneIndicators(indicators, messages, now)
	if len(out) != 1 {
		t.Errorf("got %d indicators, want pre-indicator message ignored", len(out))
	}
}

func TestRequestGuard(t *testing.T) {
	var guard RequestGuard

	first := guard.Next()
	second := guard.Next()

	if guard.Current(first) {
		t.Errorf("stale token still current")
	}
	if !guard.Current(second) {
		t.Errorf("newest token not current")
	}
}
