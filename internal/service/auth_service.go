package service

import (
	"context"
	"errors"
	"time"

	"almox/internal/apierror"
	"almox/internal/config"
	"almox/internal/dto"
	"almox/internal/model"
	"almox/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService issues and refreshes JWT pairs. While the users table is empty
// the API runs in bootstrap mode: Login accepts only the configured bootstrap
// credentials and answers with {"bootstrap": true}, and BootstrapAdmin may
// create the first account. Both paths close permanently once a user exists.
type AuthService interface {
	// Login returns (tokens, false, nil) on a normal login or
	// (nil, true, nil) when bootstrap credentials were accepted.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, bool, error)
	BootstrapAdmin(ctx context.Context, req dto.BootstrapAdminRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.UserResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if count == 0 {
		if req.Username == s.cfg.BootstrapUsername && req.Password == s.cfg.BootstrapPassword {
			return nil, true, nil
		}
		return nil, false, apierror.Errorf(apierror.Unauthorized, "invalid credentials")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apierror.Errorf(apierror.Unauthorized, "invalid credentials")
		}
		return nil, false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, false, apierror.Errorf(apierror.Unauthorized, "invalid credentials")
	}

	resp, err := s.tokenPair(user)
	return resp, false, err
}

func (s *authService) BootstrapAdmin(ctx context.Context, req dto.BootstrapAdminRequest) (*dto.LoginResponse, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apierror.Errorf(apierror.Conflict, "setup already completed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Errorf(apierror.Conflict, "setup already completed")
		}
		return nil, err
	}
	return s.tokenPair(user)
}

func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Errorf(apierror.Conflict, "username %s already taken", req.Username)
		}
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Username: user.Username}, nil
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Errorf(apierror.Unauthorized, "invalid refresh token")
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return nil, apierror.Errorf(apierror.Unauthorized, "invalid refresh token")
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apierror.Errorf(apierror.Unauthorized, "invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, int64(uid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.Unauthorized, "invalid refresh token")
		}
		return nil, err
	}
	return s.tokenPair(user)
}

func (s *authService) tokenPair(user *model.User) (*dto.LoginResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTAccessMinutes) * time.Minute
	refreshTTL := time.Duration(s.cfg.JWTRefreshDays) * 24 * time.Hour

	access, err := s.signToken(user, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         dto.UserResponse{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *authService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     tokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}
