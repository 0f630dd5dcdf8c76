package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/otptoken"
	"backoffice_portal_backend/internal/auth/password"
	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/auth/repository"
	"backoffice_portal_backend/internal/auth/transport"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/config"
	"backoffice_portal_backend/platform/logger"
)

const (
	accessTokenType = "access"
	otpDigits       = 6
)

// Service provides authentication business logic.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignupSuperadmin bootstraps the first superadmin account.
// Once a superadmin exists, further signups are rejected.
func (s *Service) SignupSuperadmin(ctx context.Context, req transport.SignupSuperadminRequest) (transport.UserResponse, error) {
	count, err := s.repo.CountByRole(ctx, string(rbac.RoleSuperAdmin))
	if err != nil {
		return transport.UserResponse{}, err
	}
	if count > 0 {
		return transport.UserResponse{}, apperr.Conflict("superadmin already exists")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.UserResponse{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Gender:       req.Gender,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		RoleName:     string(rbac.RoleSuperAdmin),
	})
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.AuthEvent("signup_superadmin", user.Email, true, "")
	return toUserResponse(user), nil
}

// Login verifies credentials and issues a JWT access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (transport.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "password mismatch")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	accessToken, err := s.signJWT(user.ID, user.RoleName, user.Email)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	s.log.AuthEvent("login", email, true, "")
	return transport.LoginResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	}, nil
}

// ForgotPassword generates a reset OTP and hands it to the mailer via the
// event bus. Unknown emails succeed silently so accounts cannot be enumerated.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("forgot_password", email, false, "unknown email")
			return nil
		}
		return err
	}

	otp, err := otptoken.GenerateOTP(otpDigits)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.GetOTPTTL())
	if err := s.repo.CreateOTP(ctx, user.ID, otptoken.HashSHA256(otp), expiresAt); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Username,
		OTP:       otp,
	})

	s.log.AuthEvent("forgot_password", email, true, "")
	return nil
}

// VerifyOTP checks a reset OTP. A matching OTP is consumed whether or not
// it has expired.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return apperr.BadRequest("invalid or expired otp")
	}

	expiresAt, err := s.repo.ConsumeOTP(ctx, user.ID, otptoken.HashSHA256(otp))
	if err != nil {
		s.log.AuthEvent("verify_otp", email, false, "no matching otp")
		return apperr.BadRequest("invalid or expired otp")
	}

	if time.Now().After(expiresAt) {
		s.log.AuthEvent("verify_otp", email, false, "otp expired")
		return apperr.BadRequest("invalid or expired otp")
	}

	s.log.AuthEvent("verify_otp", email, true, "")
	return nil
}

// SetPassword replaces the password of the user with the given email.
func (s *Service) SetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		return err
	}
	s.log.AuthEvent("set_password", email, true, "")
	return nil
}

// VerifyToken reports whether a raw access token is still valid.
func (s *Service) VerifyToken(rawToken string) transport.VerifyTokenResponse {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.GetJWTAccessSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return transport.VerifyTokenResponse{Valid: false}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return transport.VerifyTokenResponse{Valid: false}
	}
	if tokenType, _ := claims["type"].(string); tokenType != accessTokenType {
		return transport.VerifyTokenResponse{Valid: false}
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return transport.VerifyTokenResponse{Valid: true, UserID: userID, Role: role}
}

func (s *Service) signJWT(userID uuid.UUID, role, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"role":  role,
		"email": email,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.RoleName,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
}
