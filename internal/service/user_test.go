package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/service"
)

func TestUserService_Create_OK(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			u.ID = uuid.New()
			return u, nil
		},
	})

	created, err := svc.Create(context.Background(), domain.User{
		Name:  "Maria",
		Email: "maria@example.com",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "maria@example.com", created.Email)
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{})

	tests := []struct {
		name string
		user domain.User
	}{
		{"blank name", domain.User{Name: " ", Email: "a@b.c"}},
		{"blank email", domain.User{Name: "Maria", Email: ""}},
		{"email without at sign", domain.User{Name: "Maria", Email: "maria.example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.user)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// TestUserService_Create_DuplicateEmail verifies that the repo's conflict on
// a taken email surfaces as domain.ErrConflict.
func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{
		create: func(_ context.Context, _ domain.User) (domain.User, error) {
			return domain.User{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), domain.User{Name: "Maria", Email: "maria@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserService_Update_PartialFields(t *testing.T) {
	existing := domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}

	svc := service.NewUserService(&mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			require.Equal(t, existing.ID, id)
			return existing, nil
		},
		update: func(_ context.Context, u domain.User) (domain.User, error) {
			return u, nil
		},
	})

	email := "maria@new.example.com"
	updated, err := svc.Update(context.Background(), existing.ID, service.UserUpdate{Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "Maria", updated.Name)
	assert.Equal(t, email, updated.Email)
}

func TestUserService_Update_InvalidEmail(t *testing.T) {
	existing := domain.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com"}

	svc := service.NewUserService(&mockUserRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.User, error) {
			return existing, nil
		},
	})

	bad := "not-an-email"
	_, err := svc.Update(context.Background(), existing.ID, service.UserUpdate{Email: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_List_NeverNil(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{
		list: func(_ context.Context) ([]domain.User, error) {
			return nil, nil
		},
	})

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
