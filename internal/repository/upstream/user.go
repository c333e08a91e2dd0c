package upstream

import (
	"context"
	"fmt"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// UserRepository implements repository.UserRepository against the content API.
type UserRepository struct {
	gql Executor
}

// NewUserRepository creates a new content-API-backed user repository.
func NewUserRepository(gql Executor) *UserRepository {
	return &UserRepository{gql: gql}
}

// Authenticate checks credentials with authenticateUserWithPassword.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var out struct {
		Result *struct {
			Item    *userRef `json:"item"`
			Message string   `json:"message"`
		} `json:"authenticateUserWithPassword"`
	}
	vars := graphql.Vars{"email": email, "password": password}
	if err := r.gql.Do(ctx, authenticateUserDoc, vars, &out); err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.Item == nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return out.Result.Item.toDomain(), nil
}

// Create registers a user.
func (r *UserRepository) Create(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	var out struct {
		CreateUser *userRef `json:"createUser"`
	}
	vars := graphql.Vars{"name": name, "email": email, "password": password, "role": role}
	if err := r.gql.Do(ctx, createUserDoc, vars, &out); err != nil {
		return nil, err
	}
	if out.CreateUser == nil {
		return nil, apperrors.Upstream("content API did not return the created user", fmt.Errorf("createUser returned null"))
	}
	return out.CreateUser.toDomain(), nil
}

// GetByID returns a user.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out struct {
		User *userRef `json:"user"`
	}
	if err := r.gql.Do(ctx, getUserDoc, graphql.Vars{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, apperrors.NotFound("user", id)
	}
	return out.User.toDomain(), nil
}

// UpdateProfile changes a user's name and email.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error) {
	return r.update(ctx, id, map[string]any{"name": name, "email": email})
}

// UpdatePassword sets a new password.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, password string) error {
	_, err := r.update(ctx, id, map[string]any{"password": password})
	return err
}

func (r *UserRepository) update(ctx context.Context, id string, data map[string]any) (*domain.User, error) {
	var out struct {
		UpdateUser *userRef `json:"updateUser"`
	}
	if err := r.gql.Do(ctx, updateUserDoc, graphql.Vars{"id": id, "data": data}, &out); err != nil {
		return nil, err
	}
	if out.UpdateUser == nil {
		return nil, apperrors.NotFound("user", id)
	}
	return out.UpdateUser.toDomain(), nil
}
