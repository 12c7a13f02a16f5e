package service

import (
	"context"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/pkg/mailer"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/specification"
	"the-family-be/internal/repository/unitofwork"
	"the-family-be/pkg/events"
	pktNats "the-family-be/pkg/nats"

	"github.com/google/uuid"
)

type ICommissionService interface {
	GetContacts(ctx context.Context, userId uuid.UUID) ([]*dto.ContactResponse, error)
	SendRequest(ctx context.Context, userId uuid.UUID, req *dto.SendContactRequestRequest) (*dto.SendContactRequestResponse, error)
	Respond(ctx context.Context, userId uuid.UUID, req *dto.RespondContactRequest) error
}

type commissionService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewCommissionService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher, log logger.ILogger) ICommissionService {
	return &commissionService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *commissionService) GetContacts(ctx context.Context, userId uuid.UUID) ([]*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.CommissionContactRepository().FindAllForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		// Accepted edges are mirrored; show only the side the user owns
		// so the list has one row per relationship.
		if c.Status == constant.ContactStatusAccepted && c.UserId != userId {
			continue
		}

		resp := &dto.ContactResponse{
			Id:          c.Id,
			UserId:      c.UserId,
			Status:      c.Status,
			Inbound:     c.ContactUserId == userId && c.Status == constant.ContactStatusPending,
			CreatedAt:   c.CreatedAt,
			RespondedAt: c.RespondedAt,
		}

		other := c.ContactProfile
		otherId := c.ContactUserId
		if c.UserId != userId {
			other = c.Profile
			otherId = c.UserId
		}
		resp.ContactId = otherId
		if other != nil {
			resp.ContactName = other.DisplayName
			resp.Email = other.Email
			resp.AvatarURL = other.AvatarURL
		}
		result = append(result, resp)
	}
	return result, nil
}

// SendRequest creates a pending edge toward the Don with the given email.
// An unknown email still gets an invite mail; the edge is only written
// once the address belongs to a registered Don.
func (s *commissionService) SendRequest(ctx context.Context, userId uuid.UUID, req *dto.SendContactRequestRequest) (*dto.SendContactRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if me == nil {
		return nil, serverutils.NewNotFound("user not found")
	}
	if me.Email == req.Email {
		return nil, serverutils.NewBadRequest("you cannot request a commission with yourself")
	}

	target, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if target == nil {
		go func() {
			if mailErr := s.emailService.SendCommissionInvite(req.Email, me.DisplayName); mailErr != nil {
				s.log.Error("CommissionService", "Failed to send commission invite", map[string]interface{}{
					"error": mailErr.Error(),
				})
			}
		}()
		return nil, serverutils.NewNotFound("no Don with that email yet. We sent them an invitation.")
	}

	existing, err := uow.CommissionContactRepository().FindOne(ctx,
		specification.ByContactEdge{UserID: userId, ContactUserID: target.Id},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != constant.ContactStatusDeclined {
		return nil, serverutils.NewConflict("a request with this Don already exists")
	}
	reverse, err := uow.CommissionContactRepository().FindOne(ctx,
		specification.ByContactEdge{UserID: target.Id, ContactUserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if reverse != nil && reverse.Status != constant.ContactStatusDeclined {
		return nil, serverutils.NewConflict("a request with this Don already exists")
	}

	contact := &entity.CommissionContact{
		Id:            uuid.New(),
		UserId:        userId,
		ContactUserId: target.Id,
		Status:        constant.ContactStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := uow.CommissionContactRepository().Create(ctx, contact); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewContactRequested(contact.Id, userId, target.Id)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("CommissionService", "Failed to publish contact event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.SendContactRequestResponse{Id: contact.Id}, nil
}

// Respond accepts or declines an inbound pending request. Accepting
// writes the mirrored edge so AreConnected holds from both sides.
func (s *commissionService) Respond(ctx context.Context, userId uuid.UUID, req *dto.RespondContactRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.CommissionContactRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if contact == nil {
		return serverutils.NewNotFound("request not found")
	}
	if contact.ContactUserId != userId {
		return serverutils.NewForbidden("this request was not sent to you")
	}
	if contact.Status != constant.ContactStatusPending {
		return serverutils.NewConflict("this request was already answered")
	}

	now := time.Now()
	status := constant.ContactStatusDeclined
	if req.Accept {
		status = constant.ContactStatusAccepted
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	contact.Status = status
	contact.RespondedAt = &now
	if err := uow.CommissionContactRepository().Update(ctx, contact); err != nil {
		return err
	}

	if req.Accept {
		mirror := &entity.CommissionContact{
			Id:            uuid.New(),
			UserId:        userId,
			ContactUserId: contact.UserId,
			Status:        constant.ContactStatusAccepted,
			CreatedAt:     now,
			RespondedAt:   &now,
		}
		if err := uow.CommissionContactRepository().Create(ctx, mirror); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewContactResponded(contact.Id, userId, contact.UserId, status)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("CommissionService", "Failed to publish contact event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}
