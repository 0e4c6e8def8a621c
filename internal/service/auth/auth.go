// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gastro-insights/internal/domain/admin"
	xerrors "gastro-insights/internal/pkg/errors"
	"gastro-insights/internal/pkg/hash"
	"gastro-insights/internal/pkg/jwt"
	"gastro-insights/internal/pkg/otp"
)

// Purpose2FA tags temp tokens so they cannot be replayed for anything
// other than completing a pending second factor.
const Purpose2FA = "2fa"

// CodeSender delivers a one-time code over an out-of-band channel.
// A false return means delivery failed; the service treats that as a
// login failure rather than leaving the admin waiting for a code that
// never arrives.
type CodeSender interface {
	SendOTP(ctx context.Context, chatID, code string, ttl time.Duration) bool
}

type AuthService struct {
	admins     admin.Repository
	otpStore   otp.Store
	sender     CodeSender
	jwtManager *jwt.Manager
	hasher     *hash.Hasher
	otpTTL     time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	admins admin.Repository,
	otpStore otp.Store,
	sender CodeSender,
	jwtManager *jwt.Manager,
	hasher *hash.Hasher,
	otpTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admins:     admins,
		otpStore:   otpStore,
		sender:     sender,
		jwtManager: jwtManager,
		hasher:     hasher,
		otpTTL:     otpTTL,
		logger:     logger,
	}
}

// ========== Login ==========

// Login authenticates an admin by username/password. Admins with a
// Telegram channel get an OTP and a temp token; the rest get tokens
// immediately.
func (s *AuthService) Login(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error) {
	a, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if !s.hasher.Verify(req.Password, a.PasswordHash) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, xerrors.ErrInvalidCredentials
	}

	if !a.Has2FA() {
		return s.issueTokens(a, "login successful")
	}

	code, err := otp.Generate(otp.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.otpStore.Put(ctx, a.ID, code); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if !s.sender.SendOTP(ctx, *a.TelegramID, code, s.otpTTL) {
		return nil, xerrors.ErrNotification
	}

	tempToken, err := s.jwtManager.Generator.GenerateTemp(a.ID, a.Username, Purpose2FA)
	if err != nil {
		return nil, fmt.Errorf("failed to generate temp token: %w", err)
	}

	s.logger.Info("OTP sent, awaiting second factor",
		zap.Int64("admin_id", a.ID),
		zap.String("username", a.Username),
	)

	return &admin.LoginResponse{
		Requires2FA: true,
		Message:     "OTP sent to your Telegram account",
		TempToken:   tempToken,
	}, nil
}

// Verify2FA exchanges a temp token plus a matching OTP for a full token pair.
func (s *AuthService) Verify2FA(ctx context.Context, req *admin.Verify2FARequest) (*admin.TokenPair, error) {
	claims, err := s.jwtManager.Verifier.VerifyTemp(req.TempToken, Purpose2FA)
	if err != nil {
		return nil, xerrors.ErrInvalidTempToken
	}

	adminID, err := claims.AdminID()
	if err != nil {
		return nil, xerrors.ErrInvalidTempToken
	}

	if err := s.otpStore.Verify(ctx, adminID, req.OTPCode); err != nil {
		return nil, err
	}

	a, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	resp, err := s.issueTokens(a, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("2FA verification succeeded", zap.Int64("admin_id", a.ID))

	info := a.Info()
	return &admin.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Admin:        &info,
	}, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is returned unchanged; its lifetime bounds the
// session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*admin.TokenPair, error) {
	claims, err := s.jwtManager.Verifier.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, xerrors.ErrInvalidRefreshToken
	}

	adminID, err := claims.AdminID()
	if err != nil {
		return nil, xerrors.ErrInvalidRefreshToken
	}

	a, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	accessToken, err := s.jwtManager.Generator.GenerateAccess(a.ID, a.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	info := a.Info()
	return &admin.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        &info,
	}, nil
}

// ValidateAccess checks an access token and returns the claims for the
// request context.
func (s *AuthService) ValidateAccess(tokenString string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccess(tokenString)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) issueTokens(a *admin.Admin, message string) (*admin.LoginResponse, error) {
	accessToken, err := s.jwtManager.Generator.GenerateAccess(a.ID, a.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.Generator.GenerateRefresh(a.ID, a.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	info := a.Info()
	return &admin.LoginResponse{
		Requires2FA:  false,
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        &info,
	}, nil
}

// AccessTTL exposes the access-token lifetime for cookie max-age.
func (s *AuthService) AccessTTL() time.Duration {
	return s.jwtManager.Generator.AccessTTL()
}

// RefreshTTL exposes the refresh-token lifetime for cookie max-age.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.jwtManager.Generator.RefreshTTL()
}

// ========== Admin management ==========

// CreateAdmin registers a new admin account. Usernames are compared
// case-sensitively, matching the unique constraint in the database.
func (s *AuthService) CreateAdmin(ctx context.Context, req *admin.CreateAdminRequest) (*admin.AdminInfo, error) {
	exists, err := s.admins.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, xerrors.ErrUsernameTaken
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.admins.Create(ctx, &admin.Admin{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		TelegramID:   req.TelegramID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin created",
		zap.Int64("admin_id", created.ID),
		zap.String("username", created.Username),
	)

	info := created.Info()
	return &info, nil
}

// ListAdmins returns all admin accounts.
func (s *AuthService) ListAdmins(ctx context.Context) ([]admin.AdminInfo, error) {
	all, err := s.admins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	infos := make([]admin.AdminInfo, 0, len(all))
	for _, a := range all {
		infos = append(infos, a.Info())
	}
	return infos, nil
}

// GetAdmin loads a single admin by id.
func (s *AuthService) GetAdmin(ctx context.Context, id int64) (*admin.AdminInfo, error) {
	a, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := a.Info()
	return &info, nil
}

// DeleteAdmin removes an admin account. Admins cannot delete themselves.
func (s *AuthService) DeleteAdmin(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return xerrors.ErrSelfDelete
	}

	if err := s.admins.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("admin deleted",
		zap.Int64("deleted_id", targetID),
		zap.Int64("by_admin_id", callerID),
	)
	return nil
}

// EnsureAdminExists seeds the initial admin account from configuration
// when no account with that username exists yet. Called once at startup.
func (s *AuthService) EnsureAdminExists(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	exists, err := s.admins.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check seed admin: %w", err)
	}
	if exists {
		return nil
	}

	_, err = s.CreateAdmin(ctx, &admin.CreateAdminRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	s.logger.Info("seeded initial admin account", zap.String("username", username))
	return nil
}
