package service

import (
	"errors"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "auth-test-secret"

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	auth, err := NewAuthService(AuthConfig{Secret: testSecret, Issuer: "technical-offer", DemoPassword: "s3cret", BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}
	return auth
}

func TestLoginIssuesToken(t *testing.T) {
	auth := newTestAuth(t)

	result, err := auth.Login(" Jane.Smith ", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.Role != entity.RoleEngineer || result.ExpiresIn != 86400 {
		t.Errorf("Unexpected result %+v", result)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["uid"] != "user_2" || claims["name"] != "Jane Smith" || claims["role"] != entity.RoleEngineer {
		t.Errorf("Unexpected claims %v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.Login("john.doe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login("nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := NewAuthService(AuthConfig{}); err == nil {
		t.Error("Expected error without secret")
	}
}

func TestGetUser(t *testing.T) {
	auth := newTestAuth(t)
	u, err := auth.GetUser("user_1")
	if err != nil || u.FullName != "John Doe" {
		t.Fatalf("Unexpected user %+v, %v", u, err)
	}
	_, err = auth.GetUser("user_9")
	mustNotFound(t, err)
}
