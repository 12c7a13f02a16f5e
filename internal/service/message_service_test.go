package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/memory"
	"the-family-be/internal/repository/specification"
	"the-family-be/internal/repository/unitofwork"
	"the-family-be/pkg/llm"
	"the-family-be/pkg/llm/factory"
	"the-family-be/pkg/orchestrator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnitOfWork struct {
	users    contract.UserRepository
	sitDowns contract.SitDownRepository
	messages contract.MessageRepository
	typing   contract.TypingIndicatorRepository
	contacts contract.CommissionContactRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return u.users }
func (u *fakeUnitOfWork) MemberRepository() contract.MemberRepository   { return nil }
func (u *fakeUnitOfWork) SitDownRepository() contract.SitDownRepository { return u.sitDowns }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository { return u.messages }
func (u *fakeUnitOfWork) TypingIndicatorRepository() contract.TypingIndicatorRepository {
	return u.typing
}
func (u *fakeUnitOfWork) CommissionContactRepository() contract.CommissionContactRepository {
	return u.contacts
}
func (u *fakeUnitOfWork) CatalogRepository() contract.CatalogRepository { return nil }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeSitDownRepository struct {
	sitDown      *entity.SitDown
	participants []*entity.SitDownParticipant
}

func (r *fakeSitDownRepository) Create(ctx context.Context, sitDown *entity.SitDown) error {
	return nil
}
func (r *fakeSitDownRepository) Update(ctx context.Context, sitDown *entity.SitDown) error {
	return nil
}
func (r *fakeSitDownRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeSitDownRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SitDown, error) {
	return r.sitDown, nil
}
func (r *fakeSitDownRepository) FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.SitDown, error) {
	return []*entity.SitDown{r.sitDown}, nil
}
func (r *fakeSitDownRepository) AddParticipant(ctx context.Context, participant *entity.SitDownParticipant) error {
	return nil
}
func (r *fakeSitDownRepository) RemoveParticipant(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (r *fakeSitDownRepository) FindParticipants(ctx context.Context, sitDownId uuid.UUID) ([]*entity.SitDownParticipant, error) {
	return r.participants, nil
}
func (r *fakeSitDownRepository) IsParticipant(ctx context.Context, sitDownId, userId uuid.UUID) (bool, error) {
	for _, p := range r.participants {
		if p.UserId != nil && *p.UserId == userId {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeSitDownRepository) CountSeatsForMember(ctx context.Context, memberId uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.users[byId.ID], nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepository) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	result := make([]*entity.User, 0)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}
func (r *fakeUserRepository) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	return nil
}
func (r *fakeUserRepository) FindRefreshToken(ctx context.Context, tokenHash string) (*entity.UserRefreshToken, error) {
	return nil, nil
}
func (r *fakeUserRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	return nil
}

type fakeChatProvider struct {
	name  string
	mu    sync.Mutex
	calls int
}

func (f *fakeChatProvider) Name() string { return f.name }

func (f *fakeChatProvider) Generate(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return "Consider it done.", nil
}

func (f *fakeChatProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	p.payloads = append(p.payloads, payload)
	p.mu.Unlock()
	return nil
}

type messageServiceFixture struct {
	service  IMessageService
	don      *entity.User
	sitDown  *entity.SitDown
	members  []*entity.Member
	messages contract.MessageRepository
	typing   contract.TypingIndicatorRepository
	provider *fakeChatProvider
}

func newMessageServiceFixture(t *testing.T, memberNames ...string) *messageServiceFixture {
	t.Helper()

	don := &entity.User{Id: uuid.New(), Email: "vito@family.dev", DisplayName: "Vito"}
	sitDown := &entity.SitDown{Id: uuid.New(), Name: "The Table", CreatedBy: don.Id, CreatedAt: time.Now()}

	donId := don.Id
	participants := []*entity.SitDownParticipant{
		{Id: uuid.New(), SitDownId: sitDown.Id, UserId: &donId, Profile: don, AddedBy: don.Id, AddedAt: time.Now()},
	}

	members := make([]*entity.Member, 0, len(memberNames))
	for _, name := range memberNames {
		member := &entity.Member{
			Id:           uuid.New(),
			OwnerId:      don.Id,
			Name:         name,
			Provider:     "claude",
			Model:        "claude-sonnet-4-20250514",
			SystemPrompt: "You are " + name + ".",
		}
		members = append(members, member)
		memberId := member.Id
		participants = append(participants, &entity.SitDownParticipant{
			Id:        uuid.New(),
			SitDownId: sitDown.Id,
			MemberId:  &memberId,
			Member:    member,
			AddedBy:   don.Id,
			AddedAt:   time.Now(),
		})
	}

	messages := memory.NewMessageRepository()
	typing := memory.NewTypingIndicatorRepository()

	uow := &fakeUnitOfWork{
		users:    &fakeUserRepository{users: map[uuid.UUID]*entity.User{don.Id: don}},
		sitDowns: &fakeSitDownRepository{sitDown: sitDown, participants: participants},
		messages: messages,
		typing:   typing,
	}
	uowFactory := &fakeFactory{uow: uow}

	provider := &fakeChatProvider{name: "claude"}
	orch := orchestrator.New(messages, typing, factory.NewRegistryFromProviders(provider), logger.NewNopLogger(), orchestrator.Config{
		RateLimit:          0,
		MaxContextMessages: constant.MaxContextMessages,
	})

	svc := NewMessageService(uowFactory, orch, &recordingPublisher{}, nil, logger.NewNopLogger())

	return &messageServiceFixture{
		service:  svc,
		don:      don,
		sitDown:  sitDown,
		members:  members,
		messages: messages,
		typing:   typing,
		provider: provider,
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSendMessageEmptyContentRejected(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom")

	_, err := fx.service.SendMessage(context.Background(), fx.don.Id, &dto.SendMessageRequest{
		SitDownId: fx.sitDown.Id,
		Content:   "   ",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	count, _ := fx.messages.Count(context.Background())
	assert.Zero(t, count)
}

func TestSendMessageAllOverCapNoSideEffects(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom", "Vinnie", "Sal", "Paulie", "Frankie", "Carlo")

	_, err := fx.service.SendMessage(context.Background(), fx.don.Id, &dto.SendMessageRequest{
		SitDownId: fx.sitDown.Id,
		Content:   "@all report in",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "You can only summon 5 at once")

	count, _ := fx.messages.Count(context.Background())
	assert.Zero(t, count, "validation failures must not persist anything")
	assert.Zero(t, fx.provider.callCount(), "no provider invocation on validation failure")
}

func TestSendMessageTriggersMentionedMember(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom", "Vinnie")
	tom := fx.members[0]

	resp, err := fx.service.SendMessage(context.Background(), fx.don.Id, &dto.SendMessageRequest{
		SitDownId: fx.sitDown.Id,
		Content:   "@Tom how we lookin?",
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{tom.Id}, resp.Mentioned)
	assert.Equal(t, constant.MessageSenderDon, resp.Message.SenderType)

	waitFor(t, 2*time.Second, func() bool {
		count, _ := fx.messages.Count(context.Background())
		return count == 2
	})

	all, err := fx.messages.FindAll(context.Background(), specification.BySitDownID{SitDownID: fx.sitDown.Id})
	require.NoError(t, err)
	require.Len(t, all, 2)

	var reply *entity.Message
	for _, m := range all {
		if m.SenderType == constant.MessageSenderMember {
			reply = m
		}
	}
	require.NotNil(t, reply, "expected a member reply in the timeline")
	require.NotNil(t, reply.SenderMemberId)
	assert.Equal(t, tom.Id, *reply.SenderMemberId)
	assert.Equal(t, constant.MessageSenderMember, reply.SenderType)
	assert.Equal(t, "claude", reply.Metadata["provider"])
	assert.False(t, reply.IsError())
	assert.Equal(t, 1, fx.provider.callCount(), "only the mentioned member responds")

	waitFor(t, 2*time.Second, func() bool {
		indicators, _ := fx.typing.FindBySitDown(context.Background(), fx.sitDown.Id)
		return len(indicators) == 0
	})
}

func TestGetTimelinePrunesStaleIndicators(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom", "Vinnie")
	tom, vinnie := fx.members[0], fx.members[1]

	stale := &entity.TypingIndicator{
		Id:         uuid.New(),
		SitDownId:  fx.sitDown.Id,
		MemberId:   tom.Id,
		MemberName: tom.Name,
		StartedBy:  fx.don.Id,
		StartedAt:  time.Now().Add(-130 * time.Second),
	}
	require.NoError(t, fx.typing.Replace(context.Background(), stale))

	fresh := &entity.TypingIndicator{
		Id:         uuid.New(),
		SitDownId:  fx.sitDown.Id,
		MemberId:   vinnie.Id,
		MemberName: vinnie.Name,
		StartedBy:  fx.don.Id,
		StartedAt:  time.Now(),
	}
	require.NoError(t, fx.typing.Replace(context.Background(), fresh))

	timeline, err := fx.service.GetTimeline(context.Background(), fx.don.Id, fx.sitDown.Id, nil)
	require.NoError(t, err)

	require.Len(t, timeline.Typing, 1)
	assert.Equal(t, vinnie.Id, timeline.Typing[0].MemberId)
}

func TestGetTimelineIncrementalFetch(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom")
	donId := fx.don.Id

	older := &entity.Message{
		Id:           uuid.New(),
		SitDownId:    fx.sitDown.Id,
		SenderType:   constant.MessageSenderDon,
		SenderUserId: &donId,
		Content:      "first order of business",
		CreatedAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, fx.messages.Create(context.Background(), older))

	newer := &entity.Message{
		Id:           uuid.New(),
		SitDownId:    fx.sitDown.Id,
		SenderType:   constant.MessageSenderDon,
		SenderUserId: &donId,
		Content:      "second order of business",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, fx.messages.Create(context.Background(), newer))

	cutoff := older.CreatedAt
	timeline, err := fx.service.GetTimeline(context.Background(), fx.don.Id, fx.sitDown.Id, &cutoff)
	require.NoError(t, err)

	require.Len(t, timeline.Messages, 1)
	assert.Equal(t, newer.Id, timeline.Messages[0].Id)
}

func TestSendMessageStrangerForbidden(t *testing.T) {
	fx := newMessageServiceFixture(t, "Tom")

	_, err := fx.service.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		SitDownId: fx.sitDown.Id,
		Content:   "let me in",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)
	assert.True(t, strings.Contains(appErr.Message, "not at this table"))
}
