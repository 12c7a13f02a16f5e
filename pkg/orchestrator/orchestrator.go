// Package orchestrator fans out AI responses for the members addressed by a
// user message. Each member runs independently: typing indicator up, prompt
// built, provider invoked, result (or a visible error notice) persisted to
// the timeline, indicator down no matter what.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/repository/contract"
	"the-family-be/pkg/llm"
	"the-family-be/pkg/prompt"

	"github.com/google/uuid"
)

// ProviderRegistry resolves a provider id to its backend.
type ProviderRegistry interface {
	Get(provider string) (llm.ChatProvider, error)
}

type Config struct {
	// RateLimit is the minimum interval between invocation starts. Pacing
	// only: calls still run concurrently once started.
	RateLimit time.Duration

	// MaxContextMessages bounds the history window per prompt.
	MaxContextMessages int

	// MaxResponseTokens caps each completion. Zero keeps the provider
	// default.
	MaxResponseTokens int
}

type Orchestrator struct {
	messages contract.MessageRepository
	typing   contract.TypingIndicatorRepository
	registry ProviderRegistry
	log      logger.ILogger
	cfg      Config

	mu       sync.Mutex
	lastCall time.Time
}

func New(messages contract.MessageRepository, typing contract.TypingIndicatorRepository, registry ProviderRegistry, log logger.ILogger, cfg Config) *Orchestrator {
	if cfg.MaxContextMessages <= 0 {
		cfg.MaxContextMessages = constant.MaxContextMessages
	}
	return &Orchestrator{
		messages: messages,
		typing:   typing,
		registry: registry,
		log:      log,
		cfg:      cfg,
	}
}

// Trigger is one member's full response cycle against a pre-send history
// snapshot. It returns an error only when even the visible error notice
// could not be persisted; that error is the caller's local-only fallback.
func (o *Orchestrator) Trigger(ctx context.Context, member *entity.Member, history []*entity.Message, sitDownCtx prompt.SitDownContext, sitDownId, startedBy uuid.UUID, replyToId *uuid.UUID) error {
	o.waitTurn()

	indicator := &entity.TypingIndicator{
		SitDownId:  sitDownId,
		MemberId:   member.Id,
		MemberName: member.Name,
		StartedBy:  startedBy,
		StartedAt:  time.Now(),
	}
	if err := o.typing.Replace(ctx, indicator); err != nil {
		o.log.Warn("orchestrator", "failed to set typing indicator", map[string]interface{}{
			"member_id": member.Id, "error": err.Error(),
		})
	}

	// The indicator comes down on every path, even if persistence fails.
	defer func() {
		if err := o.typing.Delete(ctx, sitDownId, member.Id); err != nil {
			o.log.Warn("orchestrator", "failed to clear typing indicator", map[string]interface{}{
				"member_id": member.Id, "error": err.Error(),
			})
		}
	}()

	content, genErr := o.generate(ctx, member, history, sitDownCtx)
	if genErr == nil {
		metadata := map[string]interface{}{
			"provider": member.Provider,
			"model":    member.Model,
		}
		if replyToId != nil {
			metadata["reply_to_id"] = replyToId.String()
		}
		msg := &entity.Message{
			SitDownId:      sitDownId,
			SenderType:     constant.MessageSenderMember,
			SenderMemberId: &member.Id,
			Content:        content,
			Metadata:       metadata,
		}
		if err := o.messages.Create(ctx, msg); err != nil {
			o.log.Error("orchestrator", "failed to persist member response", map[string]interface{}{
				"member_id": member.Id, "error": err.Error(),
			})
			return fmt.Errorf("%s couldn't respond: %w", member.Name, err)
		}
		return nil
	}

	// Persist the failure as a visible message so every participant sees
	// why this member stayed silent.
	var provErr *llm.ProviderError
	errorContent := "_Encountered an error and couldn't respond._"
	if errors.As(genErr, &provErr) {
		errorContent = fmt.Sprintf("_Couldn't respond: %s_", provErr.Message)
	}

	metadata := map[string]interface{}{"error": true}
	if replyToId != nil {
		metadata["reply_to_id"] = replyToId.String()
	}
	errMsg := &entity.Message{
		SitDownId:      sitDownId,
		SenderType:     constant.MessageSenderMember,
		SenderMemberId: &member.Id,
		Content:        errorContent,
		Metadata:       metadata,
	}
	if err := o.messages.Create(ctx, errMsg); err != nil {
		o.log.Error("orchestrator", "failed to persist error notice", map[string]interface{}{
			"member_id": member.Id, "error": err.Error(),
		})
		if provErr != nil {
			return fmt.Errorf("%s couldn't respond: %s", member.Name, provErr.Message)
		}
		return fmt.Errorf("%s encountered an error", member.Name)
	}
	return nil
}

// TriggerAll runs Trigger concurrently for each member. Failures are
// independent; the returned error joins every local-only failure line.
func (o *Orchestrator) TriggerAll(ctx context.Context, members []*entity.Member, history []*entity.Message, sitDownCtx prompt.SitDownContext, sitDownId, startedBy uuid.UUID, replyToId *uuid.UUID) error {
	var wg sync.WaitGroup
	errCh := make(chan string, len(members))

	for _, member := range members {
		wg.Add(1)
		go func(m *entity.Member) {
			defer wg.Done()
			if err := o.Trigger(ctx, m, history, sitDownCtx, sitDownId, startedBy, replyToId); err != nil {
				errCh <- err.Error()
			}
		}(member)
	}
	wg.Wait()
	close(errCh)

	var lines []string
	for line := range errCh {
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return errors.New(strings.Join(lines, ". "))
	}
	return nil
}

func (o *Orchestrator) generate(ctx context.Context, member *entity.Member, history []*entity.Message, sitDownCtx prompt.SitDownContext) (string, error) {
	provider, err := o.registry.Get(member.Provider)
	if err != nil {
		return "", err
	}

	built := prompt.Build(member, history, sitDownCtx, o.cfg.MaxContextMessages)
	turns := make([]llm.Message, len(built.Messages))
	for i, t := range built.Messages {
		turns[i] = llm.Message{Role: t.Role, Content: t.Content}
	}

	opts := []llm.Option{llm.WithModel(member.Model)}
	if o.cfg.MaxResponseTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(o.cfg.MaxResponseTokens))
	}
	return provider.Generate(ctx, built.System, turns, opts...)
}

// waitTurn reserves the next invocation-start slot. A single shared
// timestamp paces starts; completions are unaffected.
func (o *Orchestrator) waitTurn() {
	if o.cfg.RateLimit <= 0 {
		return
	}

	o.mu.Lock()
	now := time.Now()
	next := o.lastCall.Add(o.cfg.RateLimit)
	var wait time.Duration
	if next.After(now) {
		wait = next.Sub(now)
		o.lastCall = next
	} else {
		o.lastCall = now
	}
	o.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
}
