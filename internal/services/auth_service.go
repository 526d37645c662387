package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/config"
	"github.com/quipapp/quip-backend/internal/dto"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// AuthService runs against the same transactional store as the matching
// engine, so it works unchanged on either store driver. Each operation
// stages its writes and lands them in one commit.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Name == "" || len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("name and email required, password must be at least 8 characters")
	}

	if _, err := s.store.UserByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatarColor := req.AvatarColor
	if avatarColor == "" {
		avatarColor = "34C759"
	}
	friendLevel := models.FriendLevelPeers
	if req.FriendLevel != "" {
		if !models.ValidFriendLevel(req.FriendLevel) {
			return nil, errors.New("invalid friend level")
		}
		friendLevel = models.FriendLevel(req.FriendLevel)
	}

	user := models.User{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		AvatarColor: avatarColor,
		FriendLevel: friendLevel,
	}

	resp, record, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}

	// User and first refresh token land in the same batch.
	s.store.StageInsert(&user)
	s.store.StageInsert(record)
	if err := s.store.Commit(); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return resp, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.UserByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, record, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.store.StageInsert(record)
	if err := s.store.Commit(); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return resp, nil
}

// Refresh rotates the token pair: the presented refresh token is consumed
// and a fresh one issued in the same commit. An expired token is removed
// on sight.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.store.RefreshTokenByHash(hashToken(req.RefreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.store.StageDelete(stored)
		if err := s.store.Commit(); err != nil {
			return nil, fmt.Errorf("failed to remove expired token: %w", err)
		}
		return nil, ErrInvalidToken
	}

	user, err := s.store.UserByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	resp, record, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.store.StageDelete(stored)
	s.store.StageInsert(record)
	if err := s.store.Commit(); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return resp, nil
}

// Logout invalidates the presented refresh token. Unknown tokens are a
// no-op so repeated logouts succeed.
func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	stored, err := s.store.RefreshTokenByHash(hashToken(req.RefreshToken))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}

	s.store.StageDelete(stored)
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}
	return nil
}

// issueTokens builds the access token and the refresh token record to be
// staged. The caller stages and commits, so nothing here mutates state.
func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, *models.RefreshToken, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawToken,
		User: dto.UserResponse{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			AvatarColor: user.AvatarColor,
			FriendLevel: string(user.FriendLevel),
		},
	}, record, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"name": user.Name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
