// Package testutil provides fixtures shared by the offer handler and service tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/middleware"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "technical-offer-test-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Store  *repository.GormStore
	Repos  *repository.Repositories
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens a sqlite database in a temporary directory and migrates the collections
// table. The file is removed with the directory when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "offer_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

// SetupTestStore returns a GormStore over a fresh sqlite database.
func SetupTestStore(t *testing.T) (*gorm.DB, *repository.GormStore) {
	t.Helper()
	db := SetupTestDB(t)
	return db, repository.NewGormStore(db, nil)
}

// NewTestEnv wires a store, its repositories and an empty router.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	db, store := SetupTestStore(t)
	return &TestEnv{
		DB:     db,
		Store:  store,
		Repos:  repository.NewRepositories(store),
		Router: SetupRouter(),
		T:      t,
	}
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, username, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"uid":      userID,
		"name":     name,
		"username": username,
		"role":     role,
		"iss":      "technical-offer",
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"jti":      fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a manager test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Manager", "test.manager", entity.RoleManager)
}

// EngineerTestToken returns a token for an engineer test user
func EngineerTestToken() string {
	return GenerateTestToken("test-user-002", "Test Engineer", "test.engineer", entity.RoleEngineer)
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoUpload posts content as the multipart field.
func DoUpload(r *gin.Engine, path, field, fileName string, content []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile(field, fileName)
	part.Write(content)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a handler.Response-like map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedProjects writes projects straight to the store.
func SeedProjects(t *testing.T, repos *repository.Repositories, projects ...entity.Project) {
	t.Helper()
	if err := repos.Project.SaveAll(context.Background(), projects); err != nil {
		t.Fatalf("Failed to seed projects: %v", err)
	}
}

// SeedProducts writes products straight to the store.
func SeedProducts(t *testing.T, repos *repository.Repositories, products ...entity.Product) {
	t.Helper()
	if err := repos.Product.SaveAll(context.Background(), products); err != nil {
		t.Fatalf("Failed to seed products: %v", err)
	}
}
