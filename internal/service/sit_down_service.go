package service

import (
	"context"
	"fmt"
	"time"

	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/specification"
	"the-family-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISitDownService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SitDownResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SitDownResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSitDownRequest) (*dto.CreateSitDownResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	AddParticipant(ctx context.Context, userId uuid.UUID, req *dto.AddParticipantRequest) (*dto.AddParticipantResponse, error)
	RemoveParticipant(ctx context.Context, userId uuid.UUID, sitDownId, participantId uuid.UUID) error
}

type sitDownService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSitDownService(uowFactory unitofwork.RepositoryFactory) ISitDownService {
	return &sitDownService{uowFactory: uowFactory}
}

func (s *sitDownService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SitDownResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDowns, err := uow.SitDownRepository().FindAllForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SitDownResponse, 0, len(sitDowns))
	for _, sd := range sitDowns {
		result = append(result, toSitDownResponse(sd, nil))
	}
	return result, nil
}

func (s *sitDownService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SitDownResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDown, err := s.authorizedSitDown(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	participants, err := uow.SitDownRepository().FindParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSitDownResponse(sitDown, participants), nil
}

// Create opens a sit-down, seats the creator, and seats any requested
// members. Seating a member owned by someone else turns the sit-down
// into a commission, which requires an accepted contact with that owner.
func (s *sitDownService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSitDownRequest) (*dto.CreateSitDownResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var members []*entity.Member
	isCommission := false
	if len(req.MemberIds) > 0 {
		found, err := uow.MemberRepository().FindByIds(ctx, req.MemberIds)
		if err != nil {
			return nil, err
		}
		if len(found) != len(req.MemberIds) {
			return nil, serverutils.NewBadRequest("one or more members do not exist")
		}
		members = found

		for _, member := range members {
			if member.OwnerId == userId {
				continue
			}
			isCommission = true
			connected, err := uow.CommissionContactRepository().AreConnected(ctx, userId, member.OwnerId)
			if err != nil {
				return nil, err
			}
			if !connected {
				return nil, serverutils.NewForbidden(fmt.Sprintf("you have no accepted commission contact with %s's Don", member.Name))
			}
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sitDown := &entity.SitDown{
		Id:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		CreatedBy:    userId,
		IsCommission: isCommission,
		CreatedAt:    time.Now(),
	}
	if err := uow.SitDownRepository().Create(ctx, sitDown); err != nil {
		return nil, err
	}

	creatorId := userId
	creator := &entity.SitDownParticipant{
		Id:        uuid.New(),
		SitDownId: sitDown.Id,
		UserId:    &creatorId,
		AddedBy:   userId,
		AddedAt:   time.Now(),
	}
	if err := uow.SitDownRepository().AddParticipant(ctx, creator); err != nil {
		return nil, err
	}

	seatedOwners := map[uuid.UUID]bool{userId: true}
	for _, member := range members {
		memberId := member.Id
		seat := &entity.SitDownParticipant{
			Id:        uuid.New(),
			SitDownId: sitDown.Id,
			MemberId:  &memberId,
			AddedBy:   userId,
			AddedAt:   time.Now(),
		}
		if err := uow.SitDownRepository().AddParticipant(ctx, seat); err != nil {
			return nil, err
		}

		// A member's Don joins the table with their member.
		if !seatedOwners[member.OwnerId] {
			seatedOwners[member.OwnerId] = true
			ownerId := member.OwnerId
			ownerSeat := &entity.SitDownParticipant{
				Id:        uuid.New(),
				SitDownId: sitDown.Id,
				UserId:    &ownerId,
				AddedBy:   userId,
				AddedAt:   time.Now(),
			}
			if err := uow.SitDownRepository().AddParticipant(ctx, ownerSeat); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &dto.CreateSitDownResponse{Id: sitDown.Id}, nil
}

func (s *sitDownService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDown, err := uow.SitDownRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if sitDown == nil {
		return serverutils.NewNotFound("sit-down not found")
	}
	if sitDown.CreatedBy != userId {
		return serverutils.NewForbidden("only the Don who opened the sit-down can close it")
	}

	return uow.SitDownRepository().Delete(ctx, id)
}

func (s *sitDownService) AddParticipant(ctx context.Context, userId uuid.UUID, req *dto.AddParticipantRequest) (*dto.AddParticipantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDown, err := s.authorizedSitDown(ctx, uow, userId, req.SitDownId)
	if err != nil {
		return nil, err
	}

	if (req.UserId == nil) == (req.MemberId == nil) {
		return nil, serverutils.NewBadRequest("exactly one of user_id or member_id must be set")
	}

	participant := &entity.SitDownParticipant{
		Id:        uuid.New(),
		SitDownId: sitDown.Id,
		AddedBy:   userId,
		AddedAt:   time.Now(),
	}

	if req.MemberId != nil {
		member, err := uow.MemberRepository().FindOne(ctx, specification.ByID{ID: *req.MemberId})
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, serverutils.NewNotFound("member not found")
		}
		if member.OwnerId != userId {
			connected, err := uow.CommissionContactRepository().AreConnected(ctx, userId, member.OwnerId)
			if err != nil {
				return nil, err
			}
			if !connected {
				return nil, serverutils.NewForbidden(fmt.Sprintf("you have no accepted commission contact with %s's Don", member.Name))
			}
			if !sitDown.IsCommission {
				sitDown.IsCommission = true
				if err := uow.SitDownRepository().Update(ctx, sitDown); err != nil {
					return nil, err
				}
			}
		}
		participant.MemberId = req.MemberId
	} else {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *req.UserId})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, serverutils.NewNotFound("user not found")
		}
		if user.Id != userId {
			connected, err := uow.CommissionContactRepository().AreConnected(ctx, userId, user.Id)
			if err != nil {
				return nil, err
			}
			if !connected {
				return nil, serverutils.NewForbidden(fmt.Sprintf("you have no accepted commission contact with %s", user.DisplayName))
			}
			if !sitDown.IsCommission {
				sitDown.IsCommission = true
				if err := uow.SitDownRepository().Update(ctx, sitDown); err != nil {
					return nil, err
				}
			}
		}
		participant.UserId = req.UserId
	}

	if err := uow.SitDownRepository().AddParticipant(ctx, participant); err != nil {
		return nil, err
	}
	return &dto.AddParticipantResponse{Id: participant.Id}, nil
}

func (s *sitDownService) RemoveParticipant(ctx context.Context, userId uuid.UUID, sitDownId, participantId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sitDown, err := s.authorizedSitDown(ctx, uow, userId, sitDownId)
	if err != nil {
		return err
	}

	participants, err := uow.SitDownRepository().FindParticipants(ctx, sitDownId)
	if err != nil {
		return err
	}

	var target *entity.SitDownParticipant
	for _, p := range participants {
		if p.Id == participantId {
			target = p
			break
		}
	}
	if target == nil {
		return serverutils.NewNotFound("participant not found")
	}

	if target.UserId != nil && *target.UserId == sitDown.CreatedBy {
		return serverutils.NewBadRequest("the Don who opened the sit-down cannot leave it")
	}

	// Anyone at the table may remove their own member; other seats need
	// either creator rights or ownership.
	allowed := userId == sitDown.CreatedBy || target.AddedBy == userId
	if !allowed && target.MemberId != nil && target.Member != nil {
		allowed = target.Member.OwnerId == userId
	}
	if !allowed && target.UserId != nil {
		allowed = *target.UserId == userId
	}
	if !allowed {
		return serverutils.NewForbidden("you cannot remove this participant")
	}

	return uow.SitDownRepository().RemoveParticipant(ctx, participantId)
}

func (s *sitDownService) authorizedSitDown(ctx context.Context, uow unitofwork.UnitOfWork, userId, sitDownId uuid.UUID) (*entity.SitDown, error) {
	sitDown, err := uow.SitDownRepository().FindOne(ctx, specification.ByID{ID: sitDownId})
	if err != nil {
		return nil, err
	}
	if sitDown == nil {
		return nil, serverutils.NewNotFound("sit-down not found")
	}

	isParticipant, err := uow.SitDownRepository().IsParticipant(ctx, sitDownId, userId)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, serverutils.NewForbidden("you are not at this table")
	}
	return sitDown, nil
}

func toSitDownResponse(sd *entity.SitDown, participants []*entity.SitDownParticipant) *dto.SitDownResponse {
	resp := &dto.SitDownResponse{
		Id:           sd.Id,
		Name:         sd.Name,
		Description:  sd.Description,
		CreatedBy:    sd.CreatedBy,
		IsCommission: sd.IsCommission,
		CreatedAt:    sd.CreatedAt,
	}
	for _, p := range participants {
		pr := dto.ParticipantResponse{
			Id:       p.Id,
			UserId:   p.UserId,
			MemberId: p.MemberId,
			AddedAt:  p.AddedAt,
		}
		if p.Profile != nil {
			pr.Name = p.Profile.DisplayName
			pr.AvatarURL = p.Profile.AvatarURL
		}
		if p.Member != nil {
			pr.Name = p.Member.Name
			pr.AvatarURL = p.Member.AvatarURL
			ownerId := p.Member.OwnerId
			pr.OwnerId = &ownerId
		}
		resp.Participants = append(resp.Participants, pr)
	}
	return resp
}
