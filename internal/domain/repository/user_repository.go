package repository

import (
	"context"

	"github.com/taskvault/taskvault/internal/domain/entity"
)

// UserRepository defines the persistence gateway for users and their token
// sequences. GetByToken is the capability lookup backing authentication:
// token value in, owning user out.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByToken(ctx context.Context, token string) (*entity.User, error)
	AddToken(ctx context.Context, userID, access, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
}
