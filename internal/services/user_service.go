package services

import (
	"context"
	"database/sql"
	"fmt"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context, page domain.Pagination) ([]models.User, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
}

type UserService struct {
	Users     UserStore
	RequestID string
}

func NewUserService(db *sql.DB) UserService {
	return UserService{Users: repositories.UserRepository{DB: db}}
}

func (s UserService) WithRequestID(rid string) UserService {
	s.RequestID = rid
	return s
}

func (s UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s UserService) List(ctx context.Context, page domain.Pagination) ([]models.User, error) {
	return s.Users.List(ctx, page)
}

// SetAdmin changes the admin flag of target on behalf of actor. Admins may not
// revoke their own flag.
func (s UserService) SetAdmin(ctx context.Context, actor, target string, admin bool) (models.User, error) {
	if target == "" {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	if actor == target && !admin {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "tidak bisa mencabut akses admin sendiri"}
	}
	if err := s.Users.SetAdmin(ctx, target, admin); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "set_admin", fmt.Sprintf("actor=%s target=%s admin=%t", actor, target, admin))
	return s.Users.GetByID(ctx, target)
}
