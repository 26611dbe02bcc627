package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/config"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/mailer"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mailer.Sender
	issuer CodeIssuer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, sender mailer.Sender) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		mailer: sender,
		issuer: NewCodeIssuer(cfg.ConfirmationSecret, cfg.ConfirmationTTL),
	}
}

// RequestCode gets-or-creates the user keyed by email and mails a
// confirmation code. Mail delivery failure is fatal for the request.
func (s *AuthService) RequestCode(email string) error {
	if err := validation.Var("email", email, "required,email"); err != nil {
		return err
	}

	user, err := s.getOrCreateByEmail(email)
	if err != nil {
		return err
	}

	code := s.issuer.Generate(user, time.Now())
	body := fmt.Sprintf("Your confirmation code is %s. It expires in %s.", code, s.cfg.ConfirmationTTL)
	if err := s.mailer.Send("Your confirmation code", body, user.Email); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ExchangeCode verifies a confirmation code and mints a token pair. A wrong
// code reads exactly like a missing account, so the endpoint cannot be used
// to probe which emails are registered.
func (s *AuthService) ExchangeCode(email, code string) (*dto.TokenResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(err)
	}

	if !s.issuer.Verify(&user, code, time.Now()) {
		return nil, apperr.NotFound("user")
	}

	return s.generateTokenPair(&user)
}

// Refresh rotates a refresh token: the presented token is revoked whether
// or not it is still valid, and a fresh pair is issued only when it was.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenResponse, error) {
	tokenHash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, apperr.Unauthenticated("invalid or expired refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, apperr.Unauthenticated("invalid or expired refresh token")
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("refresh token user lookup: %w", err))
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) getOrCreateByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !isNotFound(err) {
		return nil, apperr.Internal(err)
	}

	credential, err := randomCredential()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	username, err := s.availableUsername(email)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Username:   username,
		Email:      email,
		Role:       models.RoleUser,
		Credential: credential,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	return &user, nil
}

// availableUsername derives the deterministic default username from the
// email's local part, appending a numeric suffix when it is taken.
func (s *AuthService) availableUsername(email string) (string, error) {
	base := UsernameFromEmail(email)
	candidate := base
	for n := 2; ; n++ {
		var count int64
		if err := s.db.Model(&models.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return "", apperr.Internal(err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(n)
	}
}

// UsernameFromEmail returns the local part, truncated to the username limit.
func UsernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	if len(local) > 50 {
		local = local[:50]
	}
	return local
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.TokenResponse, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.TokenResponse{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func randomCredential() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
