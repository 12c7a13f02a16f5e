package dto

import "github.com/google/uuid"

type CatalogModelResponse struct {
	Id       uuid.UUID `json:"id"`
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
	Alias    string    `json:"alias"`
}
