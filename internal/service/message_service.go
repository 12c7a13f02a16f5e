package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/specification"
	"the-family-be/internal/repository/unitofwork"
	"the-family-be/pkg/events"
	"the-family-be/pkg/mention"
	pktNats "the-family-be/pkg/nats"
	"the-family-be/pkg/orchestrator"
	"the-family-be/pkg/prompt"
	"the-family-be/pkg/timeline"

	"github.com/google/uuid"
)

type IMessageService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetTimeline(ctx context.Context, userId uuid.UUID, sitDownId uuid.UUID, after *time.Time) (*dto.TimelineResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	orch             *orchestrator.Orchestrator
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	orch *orchestrator.Orchestrator,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		orch:             orch,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// SendMessage validates, persists the Don's message, then detaches the
// member responses. Validation failures happen before any write; once the
// message row is in, the call returns and mentioned members respond in the
// background, each independently.
func (s *messageService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, serverutils.NewBadRequest("message content cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDown, participants, err := s.authorizedTable(ctx, uow, userId, req.SitDownId)
	if err != nil {
		return nil, err
	}

	roster, rosterMembers := buildRoster(participants)
	ownerNames, err := s.ownerNames(ctx, uow, participants, rosterMembers)
	if err != nil {
		return nil, err
	}

	mentioned, err := mention.ExtractMentions(req.Content, roster, mention.OwnerLabels(roster, ownerNames), constant.MaxAllMentions)
	if err != nil {
		var tooMany *mention.TooManyMentionsError
		if errors.As(err, &tooMany) {
			return nil, serverutils.NewBadRequest(tooMany.Error())
		}
		return nil, err
	}

	senderId := userId
	msg := &entity.Message{
		Id:           uuid.New(),
		SitDownId:    sitDown.Id,
		SenderType:   constant.MessageSenderDon,
		SenderUserId: &senderId,
		Content:      req.Content,
		Mentions:     mentioned,
		Metadata:     map[string]interface{}{},
		CreatedAt:    time.Now(),
	}

	if req.ReplyToId != nil {
		// Soft reference. Only persisted when it resolves inside this
		// sit-down; a stale id is dropped, not an error.
		target, err := uow.MessageRepository().FindOne(ctx,
			specification.ByID{ID: *req.ReplyToId},
			specification.BySitDownID{SitDownID: sitDown.Id},
		)
		if err != nil {
			return nil, err
		}
		if target != nil {
			msg.Metadata["reply_to_id"] = target.Id.String()
		}
	}

	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publishMessagePosted(ctx, msg)

	if len(mentioned) > 0 {
		s.detachResponses(sitDown, participants, rosterMembers, mentioned, ownerNames, userId, msg.Id)
	}

	return &dto.SendMessageResponse{
		Message:   *toMessageResponse(msg, nil),
		Mentioned: mentioned,
	}, nil
}

func (s *messageService) GetTimeline(ctx context.Context, userId uuid.UUID, sitDownId uuid.UUID, after *time.Time) (*dto.TimelineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, _, err := s.authorizedTable(ctx, uow, userId, sitDownId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.BySitDownID{SitDownID: sitDownId},
		specification.TimelineOrder{},
	}
	if after != nil {
		// Incremental fetch; clients pass the newest created_at they hold.
		specs = append(specs, specification.CreatedAfter{After: *after})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	messages = timeline.DedupeMessages(messages)

	indicators, err := uow.TypingIndicatorRepository().FindBySitDown(ctx, sitDownId)
	if err != nil {
		return nil, err
	}
	indicators = timeline.PruneIndicators(indicators, messages, time.Now())

	byId := make(map[uuid.UUID]*entity.Message, len(messages))
	for _, m := range messages {
		byId[m.Id] = m
	}

	resp := &dto.TimelineResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
		Typing:   make([]dto.TypingIndicatorResponse, 0, len(indicators)),
	}
	for _, m := range messages {
		var replyTo *entity.Message
		if rid := m.ReplyToId(); rid != nil {
			replyTo = byId[*rid]
		}
		resp.Messages = append(resp.Messages, *toMessageResponse(m, replyTo))
	}
	for _, ind := range indicators {
		resp.Typing = append(resp.Typing, dto.TypingIndicatorResponse{
			Id:         ind.Id,
			SitDownId:  ind.SitDownId,
			MemberId:   ind.MemberId,
			MemberName: ind.MemberName,
			StartedAt:  ind.StartedAt,
		})
	}
	return resp, nil
}

// detachResponses hands the mentioned members to the orchestrator on a
// background context so the HTTP call returns immediately.
func (s *messageService) detachResponses(
	sitDown *entity.SitDown,
	participants []*entity.SitDownParticipant,
	rosterMembers map[uuid.UUID]*entity.Member,
	mentioned []uuid.UUID,
	ownerNames map[uuid.UUID]string,
	startedBy uuid.UUID,
	triggerMessageId uuid.UUID,
) {
	members := make([]*entity.Member, 0, len(mentioned))
	for _, id := range mentioned {
		if m, ok := rosterMembers[id]; ok {
			members = append(members, m)
		}
	}

	allMembers := make([]*entity.Member, 0, len(rosterMembers))
	for _, p := range participants {
		if p.MemberId != nil {
			if m, ok := rosterMembers[*p.MemberId]; ok {
				allMembers = append(allMembers, m)
			}
		}
	}

	dons := make([]prompt.Don, 0)
	for _, p := range participants {
		if p.UserId != nil {
			name := ownerNames[*p.UserId]
			if name == "" && p.Profile != nil {
				name = p.Profile.DisplayName
			}
			dons = append(dons, prompt.Don{UserId: *p.UserId, DisplayName: name})
		}
	}

	sitDownCtx := prompt.SitDownContext{
		IsCommission: sitDown.IsCommission,
		Dons:         dons,
		AllMembers:   allMembers,
	}

	sitDownId := sitDown.Id
	replyToId := triggerMessageId
	go func() {
		ctx := context.Background()
		uow := s.uowFactory.NewUnitOfWork(ctx)
		history, err := uow.MessageRepository().FindRecent(ctx, sitDownId, constant.MaxContextMessages)
		if err != nil {
			s.log.Error("MessageService", "Failed to load history for responses", map[string]interface{}{
				"sit_down_id": sitDownId,
				"error":       err.Error(),
			})
			return
		}
		if err := s.orch.TriggerAll(ctx, members, history, sitDownCtx, sitDownId, startedBy, &replyToId); err != nil {
			s.log.Error("MessageService", "Member responses failed", map[string]interface{}{
				"sit_down_id": sitDownId,
				"error":       err.Error(),
			})
		}
	}()
}

func (s *messageService) publishMessagePosted(ctx context.Context, msg *entity.Message) {
	messageId := msg.Id
	payload, err := json.Marshal(dto.PublishTimelineEventMessage{
		SitDownId: msg.SitDownId,
		Kind:      TimelineEventMessagePosted,
		MessageId: &messageId,
	})
	if err == nil {
		if pubErr := s.publisherService.Publish(ctx, payload); pubErr != nil {
			s.log.Warn("MessageService", "Failed to publish timeline event", map[string]interface{}{
				"sit_down_id": msg.SitDownId,
				"error":       pubErr.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewMessagePosted(msg.SitDownId, msg.Id, msg.SenderType)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("MessageService", "Failed to publish message event", map[string]interface{}{
				"sit_down_id": msg.SitDownId,
				"error":       err.Error(),
			})
		}
	}
}

func (s *messageService) authorizedTable(ctx context.Context, uow unitofwork.UnitOfWork, userId, sitDownId uuid.UUID) (*entity.SitDown, []*entity.SitDownParticipant, error) {
	sitDown, err := uow.SitDownRepository().FindOne(ctx, specification.ByID{ID: sitDownId})
	if err != nil {
		return nil, nil, err
	}
	if sitDown == nil {
		return nil, nil, serverutils.NewNotFound("sit-down not found")
	}

	participants, err := uow.SitDownRepository().FindParticipants(ctx, sitDownId)
	if err != nil {
		return nil, nil, err
	}

	seated := false
	for _, p := range participants {
		if p.UserId != nil && *p.UserId == userId {
			seated = true
			break
		}
	}
	if !seated {
		return nil, nil, serverutils.NewForbidden("you are not at this table")
	}
	return sitDown, participants, nil
}

func buildRoster(participants []*entity.SitDownParticipant) ([]mention.Persona, map[uuid.UUID]*entity.Member) {
	roster := make([]mention.Persona, 0)
	members := make(map[uuid.UUID]*entity.Member)
	for _, p := range participants {
		if p.MemberId == nil || p.Member == nil {
			continue
		}
		roster = append(roster, mention.Persona{
			Id:      p.Member.Id,
			Name:    p.Member.Name,
			OwnerId: p.Member.OwnerId,
		})
		members[p.Member.Id] = p.Member
	}
	return roster, members
}

// ownerNames resolves display names for every member owner, falling back
// to a user lookup for owners not seated at the table themselves.
func (s *messageService) ownerNames(ctx context.Context, uow unitofwork.UnitOfWork, participants []*entity.SitDownParticipant, rosterMembers map[uuid.UUID]*entity.Member) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, p := range participants {
		if p.UserId != nil && p.Profile != nil {
			names[*p.UserId] = p.Profile.DisplayName
		}
	}

	missing := make([]uuid.UUID, 0)
	for _, m := range rosterMembers {
		if _, ok := names[m.OwnerId]; !ok {
			missing = append(missing, m.OwnerId)
		}
	}
	if len(missing) > 0 {
		users, err := uow.UserRepository().FindByIds(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.Id] = u.DisplayName
		}
	}
	return names, nil
}

func toMessageResponse(m *entity.Message, replyTo *entity.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		Id:             m.Id,
		SitDownId:      m.SitDownId,
		SenderType:     m.SenderType,
		SenderUserId:   m.SenderUserId,
		SenderMemberId: m.SenderMemberId,
		Content:        m.Content,
		Mentions:       m.Mentions,
		Metadata:       m.Metadata,
		CreatedAt:      m.CreatedAt,
	}
	if m.Profile != nil {
		resp.SenderName = m.Profile.DisplayName
		resp.AvatarURL = m.Profile.AvatarURL
	}
	if m.Member != nil {
		resp.SenderName = m.Member.Name
		resp.AvatarURL = m.Member.AvatarURL
	}
	if resp.SenderName == "" && m.SenderType == constant.MessageSenderMember {
		resp.SenderName = fmt.Sprintf("Member %s", shortId(m.SenderMemberId))
	}
	if replyTo != nil {
		resp.ReplyTo = toMessageResponse(replyTo, nil)
	}
	return resp
}

func shortId(id *uuid.UUID) string {
	if id == nil {
		return "unknown"
	}
	return id.String()[:8]
}
