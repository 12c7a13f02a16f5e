package mapper

import (
	"encoding/json"

	"the-family-be/internal/entity"
	"the-family-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMapper converts timeline rows between the GORM models and the domain
// entities, including the JSONB mentions/metadata columns.
type ChatMapper struct {
	users   *UserMapper
	members *MemberMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{
		users:   NewUserMapper(),
		members: NewMemberMapper(),
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var mentions []uuid.UUID
	if len(msg.Mentions) > 0 {
		var raw []string
		if err := json.Unmarshal(msg.Mentions, &raw); err == nil {
			for _, s := range raw {
				if id, err := uuid.Parse(s); err == nil {
					mentions = append(mentions, id)
				}
			}
		}
	}

	return &entity.Message{
		Id:             msg.Id,
		SitDownId:      msg.SitDownId,
		SenderType:     msg.SenderType,
		SenderUserId:   msg.SenderUserId,
		SenderMemberId: msg.SenderMemberId,
		Content:        msg.Content,
		Mentions:       mentions,
		Metadata:       map[string]interface{}(msg.Metadata),
		CreatedAt:      msg.CreatedAt,
		Profile:        m.users.ToEntity(msg.Profile),
		Member:         m.members.ToEntity(msg.Member),
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	raw := make([]string, 0, len(msg.Mentions))
	for _, id := range msg.Mentions {
		raw = append(raw, id.String())
	}
	mentions, _ := json.Marshal(raw)

	metadata := msg.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &model.Message{
		Id:             msg.Id,
		SitDownId:      msg.SitDownId,
		SenderType:     msg.SenderType,
		SenderUserId:   msg.SenderUserId,
		SenderMemberId: msg.SenderMemberId,
		Content:        msg.Content,
		Mentions:       datatypes.JSON(mentions),
		Metadata:       datatypes.JSONMap(metadata),
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ChatMapper) TypingIndicatorToEntity(t *model.TypingIndicator) *entity.TypingIndicator {
	if t == nil {
		return nil
	}
	return &entity.TypingIndicator{
		Id:         t.Id,
		SitDownId:  t.SitDownId,
		MemberId:   t.MemberId,
		MemberName: t.MemberName,
		StartedBy:  t.StartedBy,
		StartedAt:  t.StartedAt,
	}
}

func (m *ChatMapper) TypingIndicatorsToEntities(models []*model.TypingIndicator) []*entity.TypingIndicator {
	entities := make([]*entity.TypingIndicator, len(models))
	for i, t := range models {
		entities[i] = m.TypingIndicatorToEntity(t)
	}
	return entities
}

func (m *ChatMapper) TypingIndicatorToModel(t *entity.TypingIndicator) *model.TypingIndicator {
	if t == nil {
		return nil
	}
	return &model.TypingIndicator{
		Id:         t.Id,
		SitDownId:  t.SitDownId,
		MemberId:   t.MemberId,
		MemberName: t.MemberName,
		StartedBy:  t.StartedBy,
		StartedAt:  t.StartedAt,
	}
}
