package services

import (
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *mocks.MockUserRepository) {
	t.Helper()
	repo := new(mocks.MockUserRepository)
	return NewUserService(repo, newTestLogger()), repo
}

func TestUserService_Register(t *testing.T) {
	service, repo := newUserService(t)

	repo.On("FindByEmail", "a@x.com").Return(nil, nil)
	repo.On("Save", mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.User).ID = 1
	})

	user, err := service.Register(&domain.User{Name: " Ann ", Email: "A@X.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.Password)
	repo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, repo := newUserService(t)

	repo.On("FindByEmail", "a@x.com").Return(&domain.User{ID: 1, Email: "a@x.com"}, nil)

	_, err := service.Register(&domain.User{Name: "Bea", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// The second record is never persisted.
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestUserService_Authenticate(t *testing.T) {
	tests := []struct {
		name     string
		stored   *domain.User
		password string
		wantErr  bool
	}{
		{
			name:     "matching password",
			stored:   &domain.User{ID: 1, Email: "a@x.com", Password: "secret"},
			password: "secret",
		},
		{
			name:     "wrong password",
			stored:   &domain.User{ID: 1, Email: "a@x.com", Password: "secret"},
			password: "nope",
			wantErr:  true,
		},
		{
			name:     "unknown email",
			stored:   nil,
			password: "secret",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newUserService(t)
			if tt.stored == nil {
				repo.On("FindByEmail", "a@x.com").Return(nil, nil)
			} else {
				repo.On("FindByEmail", "a@x.com").Return(tt.stored, nil)
			}

			user, err := service.Authenticate("a@x.com", tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(1), user.ID)
				assert.Empty(t, user.Password)
			}
		})
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	service, repo := newUserService(t)

	repo.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, Email: "a@x.com"}, nil)
	repo.On("FindByEmail", "b@x.com").Return(&domain.User{ID: 2, Email: "b@x.com"}, nil)

	email := "b@x.com"
	_, err := service.Update(1, domain.UserPatch{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Update_KeepingOwnEmail(t *testing.T) {
	service, repo := newUserService(t)

	repo.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, Email: "a@x.com"}, nil)
	city := "Lisbon"
	email := "a@x.com"
	repo.On("Update", uint64(1), mock.AnythingOfType("domain.UserPatch")).
		Return(&domain.User{ID: 1, Email: "a@x.com", City: "Lisbon", Password: "secret"}, nil)

	user, err := service.Update(1, domain.UserPatch{Email: &email, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", user.City)
	assert.Empty(t, user.Password)

	// Re-submitting your own email is not a conflict.
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything)
}

func TestUserService_List_SanitizesPasswords(t *testing.T) {
	service, repo := newUserService(t)

	repo.On("FindAll").Return([]domain.User{
		{ID: 1, Email: "a@x.com", Password: "secret"},
		{ID: 2, Email: "b@x.com", Password: "hunter2"},
	}, nil)

	users, err := service.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}
