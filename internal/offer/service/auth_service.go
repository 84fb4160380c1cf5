package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthConfig holds the token settings of AuthService.
type AuthConfig struct {
	Secret       string
	Issuer       string
	TokenExpire  time.Duration
	DemoPassword string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}

// AuthService signs users in against a fixed user list.
type AuthService struct {
	cfg   AuthConfig
	users map[string]*entity.User
}

var demoUsers = []entity.User{
	{ID: "user_1", FullName: "John Doe", Username: "john.doe", Role: entity.RoleManager},
	{ID: "user_2", FullName: "Jane Smith", Username: "jane.smith", Role: entity.RoleEngineer},
}

// NewAuthService hashes the demo password for every built-in user.
func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.TokenExpire <= 0 {
		cfg.TokenExpire = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := make(map[string]*entity.User, len(demoUsers))
	for _, u := range demoUsers {
		u := u
		u.PasswordHash = string(hash)
		users[u.Username] = &u
	}
	return &AuthService{cfg: cfg, users: users}, nil
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, ok := s.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.TokenExpire.Seconds()),
		User:        user,
	}, nil
}

// GetUser returns the user with id.
func (s *AuthService) GetUser(id string) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, notFound("user", id)
}

func (s *AuthService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"uid":      user.ID,
		"name":     user.FullName,
		"username": user.Username,
		"role":     user.Role,
		"iss":      s.cfg.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenExpire).Unix(),
		"jti":      uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
