package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"uid":      "user_1",
		"name":     "John Doe",
		"username": "john.doe",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(KeyUserID), "user_name": c.GetString(KeyUserName)})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r *gin.Engine, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newRouter(JWTAuth(testSecret))

	t.Run("missing token", func(t *testing.T) {
		if w := do(r, "/protected", ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other", validClaims("Engineer"))
		if w := do(r, "/protected", token); w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims("Engineer")
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		if w := do(r, "/protected", signToken(t, testSecret, claims)); w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("valid header", func(t *testing.T) {
		w := do(r, "/protected", signToken(t, testSecret, validClaims("Engineer")))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("valid query param", func(t *testing.T) {
		w := do(r, "/protected?token="+signToken(t, testSecret, validClaims("Engineer")), "")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRequireRole(t *testing.T) {
	r := newRouter(JWTAuth(testSecret), RequireRole("Manager"))

	if w := do(r, "/protected", signToken(t, testSecret, validClaims("Engineer"))); w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for engineer, got %d", w.Code)
	}
	if w := do(r, "/protected", signToken(t, testSecret, validClaims("Manager"))); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for manager, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc" || w.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("Expected request id to be reused, got body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.Len() == 0 {
		t.Fatal("Expected generated request id")
	}
}
