package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/pkg/mailer"
)

// ==================== UserService 用户服务 ====================

// UserService 用户注册、登录与资料
type UserService struct {
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
	dispatcher  mailer.Dispatcher
	logger      *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(
	userRepo repository.UserRepository,
	contactRepo repository.ContactRepository,
	dispatcher mailer.Dispatcher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// ==================== 注册 / 登录 ====================

// Register 注册用户，成功后发送注册确认邮件（尽力而为）
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	userType := req.UserType
	if userType == "" {
		userType = model.UserTypeBuyer
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.SysUser{
		Username:  req.Username,
		Password:  string(hashedPassword),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  userType,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.dispatcher.Submit(user.Email, "注册成功", "Successful registration!")

	return toUserInfo(user), nil
}

// Login 用户登录
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         toUserInfo(user),
	}, nil
}

// RefreshToken 刷新 Token
func (s *UserService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// ==================== 资料 ====================

// GetProfile 当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("用户不存在")
	}
	return toUserInfo(user), nil
}

// GetUser 按 id 查用户
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserInfo, error) {
	return s.GetProfile(ctx, id)
}

// ListUsers 用户列表
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]dto.UserInfo, int64, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.UserInfo, len(users))
	for i := range users {
		list[i] = *toUserInfo(&users[i])
	}
	return list, total, nil
}

// ==================== 联系方式 ====================

// AddContact 新增联系方式
func (s *UserService) AddContact(ctx context.Context, userID int64, req *dto.ContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		UserID: userID,
		Type:   req.Type,
		Value:  req.Value,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContacts 联系方式列表
func (s *UserService) ListContacts(ctx context.Context, userID int64) ([]model.Contact, error) {
	return s.contactRepo.ListByUserID(ctx, userID)
}

// DeleteContact 删除联系方式（仅限本人）
func (s *UserService) DeleteContact(ctx context.Context, userID, contactID int64) error {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return notFoundErr("联系方式不存在")
	}
	if contact.UserID != userID {
		return ErrPermissionDenied
	}
	return s.contactRepo.Delete(ctx, contactID)
}

// ==================== 辅助 ====================

func toUserInfo(user *model.SysUser) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserType:  user.UserType,
		IsStaff:   user.IsStaff,
		IsActive:  user.IsActive,
	}
}

// ==================== 用户相关错误 ====================

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrInvalidToken       = errors.New("无效的 Token")
	ErrUsernameExists     = fmt.Errorf("%w: 用户名已存在", ErrValidation)
)
