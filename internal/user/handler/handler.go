package handler

import (
	"context"
	"errors"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/auth"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/user"
	"github.com/fekuna/omnipos-retail-service/internal/user/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type UserHandler struct {
	retailv1.UnimplementedUserServiceServer
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) CreateUser(ctx context.Context, req *retailv1.CreateUserRequest) (*retailv1.UserResponse, error) {
	u, err := h.uc.CreateUser(ctx, &dto.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.UserResponse{User: mapUserToProto(u)}, nil
}

func (h *UserHandler) ListUsers(ctx context.Context, req *retailv1.ListUsersRequest) (*retailv1.ListUsersResponse, error) {
	users, count, err := h.uc.ListUsers(ctx, &dto.UserFilters{
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	protoUsers := make([]*retailv1.User, len(users))
	for i := range users {
		protoUsers[i] = mapUserToProto(&users[i])
	}

	return &retailv1.ListUsersResponse{
		Users:    protoUsers,
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *UserHandler) UpdateUser(ctx context.Context, req *retailv1.UpdateUserRequest) (*retailv1.UserResponse, error) {
	u, err := h.uc.UpdateUser(ctx, &dto.UpdateUserInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.UserResponse{User: mapUserToProto(u)}, nil
}

func (h *UserHandler) DeleteUser(ctx context.Context, req *retailv1.DeleteUserRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteUser(ctx, req.ID); err != nil {
		return nil, h.toStatus(ctx, err)
	}
	h.logger.Info("user removed", zap.String("user_id", req.ID), zap.String("by", auth.GetUserID(ctx)))
	return &emptypb.Empty{}, nil
}

func (h *UserHandler) toStatus(ctx context.Context, err error) error {
	lang := auth.GetLanguage(ctx)
	switch {
	case errors.Is(err, user.ErrInvalidUser):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "UserInvalid", map[string]interface{}{"Reason": user.InvalidReason(err)}))
	case errors.Is(err, user.ErrEmailExists):
		return status.Error(codes.AlreadyExists, i18n.T(lang, "UserEmailExists", nil))
	case errors.Is(err, user.ErrUserNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "UserNotFound", nil))
	}
	h.logger.Error("user request failed", zap.Error(err))
	return status.Error(codes.Internal, i18n.T(lang, "InternalError", nil))
}

// mapUserToProto never carries the password hash.
func mapUserToProto(u *model.User) *retailv1.User {
	return &retailv1.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
