package unitofwork

import (
	"context"

	"the-family-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MemberRepository() contract.MemberRepository
	SitDownRepository() contract.SitDownRepository
	MessageRepository() contract.MessageRepository
	TypingIndicatorRepository() contract.TypingIndicatorRepository
	CommissionContactRepository() contract.CommissionContactRepository
	CatalogRepository() contract.CatalogRepository
}
