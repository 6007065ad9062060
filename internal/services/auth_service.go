package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/utils"
	"github.com/yoockh/hireboard/internal/validation"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.UserRole
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, login, password string) (*models.User, string, error)
}

type authService struct {
	users    pgrepo.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users pgrepo.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	const op = "AuthService.Register"

	fields := validation.Collect(
		validation.Required("username", in.Username),
		validation.Username("username", in.Username),
		validation.Required("email", in.Email),
		validation.Email("email", in.Email),
		validation.Password("password", in.Password),
	)
	if !in.Role.Valid() {
		fields = append(fields, utils.FieldError{Field: "role", Message: "must be employer or job_seeker"})
	}
	if len(fields) > 0 {
		return nil, "", utils.EFields(op, fields)
	}

	taken, err := s.users.UsernameTaken(ctx, in.Username)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to check username", err)
	}
	if taken {
		return nil, "", utils.EFields(op, []utils.FieldError{{Field: "username", Message: "is already taken"}})
	}

	taken, err = s.users.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to check email", err)
	}
	if taken {
		return nil, "", utils.EFields(op, []utils.FieldError{{Field: "email", Message: "is already taken"}})
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create account", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	if login == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "login and password are required", nil)
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load account", err)
	}

	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func (s *authService) issueToken(u *models.User) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Role: string(u.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
