package user

import (
	"context"
	"errors"

	"bookmanager/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, username, firstName, lastName, hashedPassword string) (User, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return User{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	newUser := &User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hashedPassword,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}

	return *newUser, nil
}

// Authenticate checks the password against the stored hash. A missing
// account and a wrong password both come back as ErrUnauthorized so the
// response does not leak which usernames exist.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrUnauthorized
	}
	if !auth.VerifyPassword(u.Password, password) {
		return User{}, ErrUnauthorized
	}
	return u, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) Update(ctx context.Context, username, firstName, lastName string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	u.FirstName = firstName
	u.LastName = lastName

	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}
