package orchestrator

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/memory"
	"the-family-be/pkg/llm"
	"the-family-be/pkg/prompt"

	"github.com/google/uuid"
)

// fakeProvider lets each test script the completion per call.
type fakeProvider struct {
	name     string
	mu       sync.Mutex
	calls    int
	generate func(model string) (string, error)
	block    chan struct{}
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.generate != nil {
		return f.generate(options.Model)
	}
	return "done", nil
}

type fakeRegistry struct {
	provider llm.ChatProvider
}

func (r *fakeRegistry) Get(provider string) (llm.ChatProvider, error) {
	if provider != r.provider.Name() {
		return nil, llm.NewProviderError(provider, "unknown_provider", "unsupported AI provider: "+provider)
	}
	return r.provider, nil
}

func newTestOrchestrator(provider llm.ChatProvider, rateLimit time.Duration) (*Orchestrator, *memoryStores) {
	stores := &memoryStores{
		messages: memory.NewMessageRepository(),
		typing:   memory.NewTypingIndicatorRepository(),
	}
	o := New(stores.messages, stores.typing, &fakeRegistry{provider: provider}, logger.NewNopLogger(), Config{
		RateLimit:          rateLimit,
		MaxContextMessages: constant.MaxContextMessages,
	})
	return o, stores
}

type memoryStores struct {
	messages contract.MessageRepository
	typing   contract.TypingIndicatorRepository
}

func testMember(name string) *entity.Member {
	return &entity.Member{
		Id:           uuid.New(),
		OwnerId:      uuid.New(),
		Name:         name,
		Provider:     "claude",
		Model:        "claude-sonnet-4-20250514",
		SystemPrompt: "You are " + name + ".",
	}
}

func sitDownContextFor(members ...*entity.Member) prompt.SitDownContext {
	return prompt.SitDownContext{AllMembers: members}
}

func TestTriggerReplacesTypingIndicator(t *testing.T) {
	provider := &fakeProvider{name: "claude", block: make(chan struct{})}
	o, stores := newTestOrchestrator(provider, 0)

	sitDownId := uuid.New()
	startedBy := uuid.New()
	vinnie := testMember("Vinnie")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.Trigger(context.Background(), vinnie, nil, sitDownContextFor(vinnie), sitDownId, startedBy, nil)
		}()
	}

	// Both invocations are in flight; the second Replace must have cleared
	// the first indicator, never stacking two rows for one member.
	waitFor(t, func() bool {
		inds, _ := stores.typing.FindBySitDown(context.Background(), sitDownId)
		return len(inds) > 0
	})
	inds, err := stores.typing.FindBySitDown(context.Background(), sitDownId)
	if err != nil {
		t.Fatalf("FindBySitDown error: %v", err)
	}
	if len(inds) != 1 {
		t.Errorf("got %d indicators for one member, want 1", len(inds))
	}

	close(provider.block)
	wg.Wait()

	inds, _ = stores.typing.FindBySitDown(context.Background(), sitDownId)
	if len(inds) != 0 {
		t.Errorf("got %d indicators after completion, want 0", len(inds))
	}
}

func TestTriggerAllPartialFailure(t *testing.T) {
	vinnie := testMember("Vinnie")
	tom := testMember("Tom")
	sal := testMember("Sal")

	// Fail only Tom's model.
	tom.Model = "bad-model"
	provider := &fakeProvider{
		name: "claude",
		generate: func(model string) (string, error) {
			if model == "bad-model" {
				return "", llm.NewProviderError("claude", "invalid_request_error", "model not found")
			}
			return "reporting in", nil
		},
	}

	o, stores := newTestOrchestrator(provider, 0)
	sitDownId := uuid.New()
	startedBy := uuid.New()
	members := []*entity.Member{vinnie, tom, sal}

	err := o.TriggerAll(context.Background(), members, nil, sitDownContextFor(members...), sitDownId, startedBy, nil)
	if err != nil {
		// The failure was persisted as a visible notice, so nothing should
		// reach the local-only fallback.
		t.Fatalf("TriggerAll error: %v", err)
	}

	messages, err := stores.messages.FindRecent(context.Background(), sitDownId, 50)
	if err != nil {
		t.Fatalf("FindRecent error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d persisted messages, want 3", len(messages))
	}

	var successes, failures int
	for _, m := range messages {
		if m.IsError() {
			failures++
			if !strings.Contains(m.Content, "Couldn't respond") {
				t.Errorf("error notice content = %q", m.Content)
			}
			if *m.SenderMemberId != tom.Id {
				t.Errorf("error notice attributed to %v, want Tom", m.SenderMemberId)
			}
		} else {
			successes++
			if m.Content != "reporting in" {
				t.Errorf("success content = %q", m.Content)
			}
		}
	}
	if successes != 2 || failures != 1 {
		t.Errorf("successes=%d failures=%d, want 2 and 1", successes, failures)
	}

	inds, _ := stores.typing.FindBySitDown(context.Background(), sitDownId)
	if len(inds) != 0 {
		t.Errorf("got %d indicators after completion, want 0", len(inds))
	}
}

func TestTriggerAllPacesStarts(t *testing.T) {
	provider := &fakeProvider{name: "claude"}
	o, _ := newTestOrchestrator(provider, 50*time.Millisecond)

	sitDownId := uuid.New()
	members := []*entity.Member{testMember("A"), testMember("B"), testMember("C")}

	start := time.Now()
	err := o.TriggerAll(context.Background(), members, nil, sitDownContextFor(members...), sitDownId, uuid.New(), nil)
	if err != nil {
		t.Fatalf("TriggerAll error: %v", err)
	}

	// Three starts spaced 50ms apart: at least 100ms between first and last.
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("elapsed = %v, want starts paced by the rate limit", elapsed)
	}
	if provider.calls != 3 {
		t.Errorf("provider calls = %d, want 3", provider.calls)
	}
}

func TestTriggerUnknownProviderPersistsNotice(t *testing.T) {
	provider := &fakeProvider{name: "claude"}
	o, stores := newTestOrchestrator(provider, 0)

	member := testMember("Vinnie")
	member.Provider = "llama"
	sitDownId := uuid.New()

	err := o.Trigger(context.Background(), member, nil, sitDownContextFor(member), sitDownId, uuid.New(), nil)
	if err != nil {
		t.Fatalf("Trigger error: %v", err)
	}

	messages, _ := stores.messages.FindRecent(context.Background(), sitDownId, 50)
	if len(messages) != 1 || !messages[0].IsError() {
		t.Fatalf("messages = %v, want one persisted error notice", messages)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want no network attempt", provider.calls)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
