package service

import (
	"context"
	"fmt"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/specification"
	"the-family-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMemberService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.MemberResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMemberRequest) (*dto.CreateMemberResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMemberRequest) (*dto.UpdateMemberResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	GetTemplates(ctx context.Context) ([]*dto.MemberTemplateResponse, error)
}

type memberService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalogService ICatalogService
}

func NewMemberService(uowFactory unitofwork.RepositoryFactory, catalogService ICatalogService) IMemberService {
	return &memberService{
		uowFactory:     uowFactory,
		catalogService: catalogService,
	}
}

func (s *memberService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	members, err := uow.MemberRepository().FindAll(ctx,
		specification.ByOwnerID{OwnerID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, toMemberResponse(member))
	}
	return result, nil
}

func (s *memberService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMemberRequest) (*dto.CreateMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.validateModel(ctx, req.Provider, req.Model); err != nil {
		return nil, err
	}

	member := &entity.Member{
		Id:           uuid.New(),
		OwnerId:      userId,
		Name:         req.Name,
		Provider:     req.Provider,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
		AvatarURL:    req.AvatarURL,
		TemplateSlug: req.TemplateSlug,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.MemberRepository().Create(ctx, member); err != nil {
		return nil, err
	}
	return &dto.CreateMemberResponse{Id: member.Id}, nil
}

func (s *memberService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMemberRequest) (*dto.UpdateMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := uow.MemberRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByOwnerID{OwnerID: userId},
	)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, serverutils.NewNotFound("member not found")
	}

	if err := s.validateModel(ctx, req.Provider, req.Model); err != nil {
		return nil, err
	}

	member.Name = req.Name
	member.Provider = req.Provider
	member.Model = req.Model
	member.SystemPrompt = req.SystemPrompt
	member.AvatarURL = req.AvatarURL
	member.UpdatedAt = time.Now()

	if err := uow.MemberRepository().Update(ctx, member); err != nil {
		return nil, err
	}
	return &dto.UpdateMemberResponse{Id: member.Id}, nil
}

func (s *memberService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := uow.MemberRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByOwnerID{OwnerID: userId},
	)
	if err != nil {
		return err
	}
	if member == nil {
		return serverutils.NewNotFound("member not found")
	}

	seats, err := uow.SitDownRepository().CountSeatsForMember(ctx, id)
	if err != nil {
		return err
	}
	if seats > 0 {
		return serverutils.NewConflict(fmt.Sprintf("%s is still seated at %d sit-down(s). Remove them from the table first.", member.Name, seats))
	}

	return uow.MemberRepository().Delete(ctx, id)
}

func (s *memberService) GetTemplates(ctx context.Context) ([]*dto.MemberTemplateResponse, error) {
	defaultProvider := constant.ProviderClaude
	defaultModel := ""

	// Pick the first enabled catalog entry as the template default. The
	// picker lets the Don change it before creating.
	models, err := s.catalogService.GetModels(ctx)
	if err == nil && len(models) > 0 {
		defaultProvider = models[0].Provider
		defaultModel = models[0].Model
	}

	result := make([]*dto.MemberTemplateResponse, 0, len(constant.MemberTemplates))
	for _, tpl := range constant.MemberTemplates {
		result = append(result, &dto.MemberTemplateResponse{
			Slug:         tpl.Slug,
			Name:         tpl.Name,
			Description:  tpl.Description,
			Provider:     defaultProvider,
			Model:        defaultModel,
			SystemPrompt: tpl.SystemPrompt,
		})
	}
	return result, nil
}

func (s *memberService) validateModel(ctx context.Context, provider, modelName string) error {
	models, err := s.catalogService.GetModels(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m.Provider == provider && m.Model == modelName {
			return nil
		}
	}
	return serverutils.NewBadRequest(fmt.Sprintf("model %s is not in the catalog for provider %s", modelName, provider))
}

func toMemberResponse(member *entity.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		Id:           member.Id,
		OwnerId:      member.OwnerId,
		Name:         member.Name,
		Provider:     member.Provider,
		Model:        member.Model,
		SystemPrompt: member.SystemPrompt,
		AvatarURL:    member.AvatarURL,
		IsTemplate:   member.IsTemplate,
		TemplateSlug: member.TemplateSlug,
		CreatedAt:    member.CreatedAt,
	}
}
