package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepository struct {
	mu       sync.Mutex
	contacts []*entity.CommissionContact
	users    map[uuid.UUID]*entity.User
}

func (r *fakeContactRepository) Create(ctx context.Context, contact *entity.CommissionContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *contact
	r.contacts = append(r.contacts, &stored)
	return nil
}

func (r *fakeContactRepository) Update(ctx context.Context, contact *entity.CommissionContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.contacts {
		if c.Id == contact.Id {
			stored := *contact
			r.contacts[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *fakeContactRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CommissionContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if r.matches(c, specs) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeContactRepository) FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.CommissionContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CommissionContact
	for _, c := range r.contacts {
		if c.UserId == userId || c.ContactUserId == userId {
			copied := *c
			copied.Profile = r.users[c.UserId]
			copied.ContactProfile = r.users[c.ContactUserId]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeContactRepository) AreConnected(ctx context.Context, userId, otherUserId uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if c.Status != constant.ContactStatusAccepted {
			continue
		}
		if (c.UserId == userId && c.ContactUserId == otherUserId) ||
			(c.UserId == otherUserId && c.ContactUserId == userId) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContactRepository) matches(c *entity.CommissionContact, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByContactEdge:
			if c.UserId != s.UserID || c.ContactUserId != s.ContactUserID {
				return false
			}
		}
	}
	return true
}

type recordingMailer struct {
	mu      sync.Mutex
	invites []string
	err     error
}

func (m *recordingMailer) SendCommissionInvite(toEmail, fromName string) error {
	m.mu.Lock()
	m.invites = append(m.invites, toEmail)
	m.mu.Unlock()
	return m.err
}

type recordingLogger struct {
	logger.NopLogger
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, message)
	l.mu.Unlock()
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func (m *recordingMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.invites...)
}

type commissionFixture struct {
	service  ICommissionService
	vito     *entity.User
	sonny    *entity.User
	contacts *fakeContactRepository
	mailer   *recordingMailer
}

func newCommissionFixture(t *testing.T) *commissionFixture {
	t.Helper()

	vito := &entity.User{Id: uuid.New(), Email: "vito@family.dev", DisplayName: "Vito"}
	sonny := &entity.User{Id: uuid.New(), Email: "sonny@family.dev", DisplayName: "Sonny"}
	users := map[uuid.UUID]*entity.User{vito.Id: vito, sonny.Id: sonny}

	contacts := &fakeContactRepository{users: users}
	uow := &fakeUnitOfWork{
		users:    &fakeUserRepository{users: users},
		contacts: contacts,
	}
	mail := &recordingMailer{}

	return &commissionFixture{
		service:  NewCommissionService(&fakeFactory{uow: uow}, mail, nil, logger.NewNopLogger()),
		vito:     vito,
		sonny:    sonny,
		contacts: contacts,
		mailer:   mail,
	}
}

func TestSendRequestToSelfRejected(t *testing.T) {
	fx := newCommissionFixture(t)

	_, err := fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: fx.vito.Email,
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestSendRequestUnknownEmailSendsInvite(t *testing.T) {
	fx := newCommissionFixture(t)

	_, err := fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: "fredo@elsewhere.dev",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	waitFor(t, time.Second, func() bool {
		return len(fx.mailer.sentTo()) == 1
	})
	assert.Equal(t, "fredo@elsewhere.dev", fx.mailer.sentTo()[0])

	all, _ := fx.contacts.FindAllForUser(context.Background(), fx.vito.Id)
	assert.Empty(t, all, "no edge until the address belongs to a Don")
}

func TestSendRequestInviteFailureLogged(t *testing.T) {
	vito := &entity.User{Id: uuid.New(), Email: "vito@family.dev", DisplayName: "Vito"}
	users := map[uuid.UUID]*entity.User{vito.Id: vito}
	uow := &fakeUnitOfWork{
		users:    &fakeUserRepository{users: users},
		contacts: &fakeContactRepository{users: users},
	}
	mail := &recordingMailer{err: errors.New("smtp down")}
	log := &recordingLogger{}
	svc := NewCommissionService(&fakeFactory{uow: uow}, mail, nil, log)

	_, err := svc.SendRequest(context.Background(), vito.Id, &dto.SendContactRequestRequest{
		Email: "fredo@elsewhere.dev",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status, "caller still gets the not-found response")

	waitFor(t, time.Second, func() bool {
		return log.errorCount() == 1
	})
}

func TestSendRequestDuplicateEdgeConflict(t *testing.T) {
	fx := newCommissionFixture(t)

	_, err := fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: fx.sonny.Email,
	})
	require.NoError(t, err)

	// Same direction again.
	_, err = fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: fx.sonny.Email,
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)

	// And from the other side while still pending.
	_, err = fx.service.SendRequest(context.Background(), fx.sonny.Id, &dto.SendContactRequestRequest{
		Email: fx.vito.Email,
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestRespondAcceptWritesMirrorEdge(t *testing.T) {
	fx := newCommissionFixture(t)

	res, err := fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: fx.sonny.Email,
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Respond(context.Background(), fx.sonny.Id, &dto.RespondContactRequest{
		Id:     res.Id,
		Accept: true,
	}))

	connected, err := fx.contacts.AreConnected(context.Background(), fx.vito.Id, fx.sonny.Id)
	require.NoError(t, err)
	assert.True(t, connected)
	connected, err = fx.contacts.AreConnected(context.Background(), fx.sonny.Id, fx.vito.Id)
	require.NoError(t, err)
	assert.True(t, connected)

	// Each Don sees the relationship as a single contact row.
	for _, don := range []*entity.User{fx.vito, fx.sonny} {
		list, err := fx.service.GetContacts(context.Background(), don.Id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, constant.ContactStatusAccepted, list[0].Status)
		assert.False(t, list[0].Inbound)
	}
}

func TestRespondOnlyRecipientMayAnswer(t *testing.T) {
	fx := newCommissionFixture(t)

	res, err := fx.service.SendRequest(context.Background(), fx.vito.Id, &dto.SendContactRequestRequest{
		Email: fx.sonny.Email,
	})
	require.NoError(t, err)

	err = fx.service.Respond(context.Background(), fx.vito.Id, &dto.RespondContactRequest{
		Id:     res.Id,
		Accept: true,
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)

	require.NoError(t, fx.service.Respond(context.Background(), fx.sonny.Id, &dto.RespondContactRequest{
		Id:     res.Id,
		Accept: false,
	}))

	err = fx.service.Respond(context.Background(), fx.sonny.Id, &dto.RespondContactRequest{
		Id:     res.Id,
		Accept: true,
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status, "an answered request stays answered")
}

var _ contract.CommissionContactRepository = (*fakeContactRepository)(nil)
