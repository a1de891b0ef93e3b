package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"robocamp/internal/config"
	"robocamp/internal/domain/user"
	"robocamp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type singleUserRepo struct {
	u *user.User
}

func (r *singleUserRepo) Create(_ context.Context, u *user.User) error { return nil }
func (r *singleUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if r.u != nil && r.u.ID == id {
		return r.u, nil
	}
	return nil, nil
}
func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (r *singleUserRepo) Update(_ context.Context, u *user.User) error { return nil }
func (r *singleUserRepo) List(_ context.Context, limit, offset int) ([]*user.User, error) {
	return nil, nil
}

func newTestRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(auth), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	r.GET("/admin", Auth(auth), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	parent := &user.User{ID: uuid.New(), Role: user.RoleParent}
	auth := service.NewAuthService(&singleUserRepo{u: parent}, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})
	router := newTestRouter(auth)

	token, err := auth.IssueToken(parent)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"malformed header", "/me", "Token abc", http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + token, http.StatusOK},
		{"parent blocked from admin", "/admin", "Bearer " + token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	auth := service.NewAuthService(&singleUserRepo{u: admin}, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})
	router := newTestRouter(auth)

	token, err := auth.IssueToken(admin)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected admin to pass, got %d (body %s)", w.Code, w.Body.String())
	}
}
