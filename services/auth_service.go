package services

import (
	"context"
	"errors"
	"time"

	"motogear-backend/models"
	"motogear-backend/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long issued access tokens stay valid.
const TokenTTL = 24 * time.Hour

// AuthService defines registration, login, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *ServiceError)
	GetMe(ctx context.Context, userID uint) (*models.User, *ServiceError)
}

type authServiceImpl struct {
	repo      repository.UserRepository
	jwtSecret []byte
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService signing tokens with jwtSecret.
func NewAuthService(repo repository.UserRepository, jwtSecret []byte, logger *zap.Logger) AuthService {
	return &authServiceImpl{repo: repo, jwtSecret: jwtSecret, logger: logger}
}

// Register creates a user account with a bcrypt-hashed password. The password
// confirmation is compared and discarded; it is never stored.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError) {
	if req.Password != req.PasswordConfirm {
		return nil, &ServiceError{Kind: KindValidation, Message: "password confirmation does not match"}
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, conflict("email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, internal("failed to register user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, internal("failed to register user")
	}

	user := &models.User{
		Email:      req.Email,
		Password:   string(hashed),
		Name:       req.Name,
		Phone:      req.Phone,
		Birthdate:  req.Birthdate,
		Gender:     req.Gender,
		EmailOptIn: req.EmailOptIn,
		SmsOptIn:   req.SmsOptIn,
		ZipCode:    req.ZipCode,
		Address1:   req.Address1,
		Address2:   req.Address2,
		Role:       models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("email already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internal("failed to register user")
	}

	s.logger.Info("User registered", zap.Uint("id", user.ID))
	return user, nil
}

// Login verifies the credentials and returns the user with a signed token.
// An unknown email and a wrong password produce the same failure so the
// response does not leak which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *ServiceError) {
	invalid := &ServiceError{Kind: KindInvalidCredentials, Message: "invalid email or password"}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", invalid
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, "", internal("failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", invalid
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, "", internal("failed to log in")
	}

	return user, token, nil
}

// GetMe returns the profile for the authenticated user id.
func (s *authServiceImpl) GetMe(ctx context.Context, userID uint) (*models.User, *ServiceError) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user not found")
		}
		s.logger.Error("Failed to load user", zap.Uint("id", userID), zap.Error(err))
		return nil, internal("failed to load user")
	}
	return user, nil
}

func (s *authServiceImpl) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
