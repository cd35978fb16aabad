package service

import (
	"context"
	"strings"
	"time"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/repository/specification"
	"skill-exchange-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.UserProfileResponse, error)
	Update(ctx context.Context, callerId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	return s.GetById(ctx, userId)
}

func (s *userService) GetById(ctx context.Context, id uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user_not_found", "User not found")
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (s *userService) Update(ctx context.Context, callerId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if callerId != req.Id {
		return nil, apperrors.AccessDenied("not_profile_owner", "Cannot update another user's profile")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Uniqueness checks and the update share one transaction.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user_not_found", "User not found")
	}

	if req.Username != "" && req.Username != user.Username {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.Conflict("username_taken", "Username already registered")
		}
		user.Username = req.Username
	}

	if req.Email != "" && strings.ToLower(req.Email) != user.Email {
		email := strings.ToLower(req.Email)
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.Conflict("email_taken", "Email already registered")
		}
		user.Email = email
	}

	now := time.Now()
	user.UpdatedAt = &now

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}
