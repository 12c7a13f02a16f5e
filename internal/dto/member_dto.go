package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMemberRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Provider     string  `json:"provider" validate:"required,oneof=claude openai gemini"`
	Model        string  `json:"model" validate:"required"`
	SystemPrompt string  `json:"system_prompt" validate:"required"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
	TemplateSlug *string `json:"template_slug,omitempty"`
}

type CreateMemberResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateMemberRequest struct {
	Id           uuid.UUID
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Provider     string  `json:"provider" validate:"required,oneof=claude openai gemini"`
	Model        string  `json:"model" validate:"required"`
	SystemPrompt string  `json:"system_prompt" validate:"required"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
}

type UpdateMemberResponse struct {
	Id uuid.UUID `json:"id"`
}

type MemberResponse struct {
	Id           uuid.UUID `json:"id"`
	OwnerId      uuid.UUID `json:"owner_id"`
	OwnerName    string    `json:"owner_name,omitempty"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsTemplate   bool      `json:"is_template"`
	TemplateSlug *string   `json:"template_slug,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type MemberTemplateResponse struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
}
