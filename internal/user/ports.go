package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, username string) error
}
