package services

import (
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo repository.UserRepository
	log  *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{repo: repo, log: logger}
}

// Register creates an account. Email uniqueness is checked by lookup,
// not by a constraint, and the address is normalized to lower case.
func (s *UserService) Register(user *domain.User) (*domain.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = normalizeEmail(user.Email)

	if user.Name == "" {
		return nil, errors.New("user name cannot be empty")
	}
	if user.Email == "" {
		return nil, errors.New("email cannot be empty")
	}

	existing, err := s.repo.FindByEmail(user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.WithField("email", user.Email).Warn("registration rejected, email taken")
		return nil, domain.ErrEmailTaken
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"userId": user.ID, "email": user.Email}).Info("user registered")
	out := user.Sanitized()
	return &out, nil
}

// Authenticate checks credentials. Passwords are stored and compared
// in plaintext.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	out := user.Sanitized()
	return &out, nil
}

func (s *UserService) Get(id uint64) (*domain.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	out := user.Sanitized()
	return &out, nil
}

func (s *UserService) List() ([]domain.User, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].Sanitized())
	}
	return out, nil
}

// Update patches a profile. An email change re-runs the uniqueness
// check against every other account.
func (s *UserService) Update(id uint64, patch domain.UserPatch) (*domain.User, error) {
	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
		if email != current.Email {
			existing, err := s.repo.FindByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailTaken
			}
		}
	}

	updated, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	out := updated.Sanitized()
	return &out, nil
}

func (s *UserService) Delete(id uint64) error {
	return s.repo.Delete(id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
