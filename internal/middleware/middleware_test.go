package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"feeb/internal/auth"

	"github.com/gin-gonic/gin"
)

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(AuthMiddleware())
	{
		protected.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		admin := protected.Group("/admin")
		admin.Use(RequireRole(auth.RoleAdmin))
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"message": "admin pong"})
			})
		}
	}

	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	r := setupProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupProtectedRouter()

	token, err := auth.GenerateToken(&auth.User{ID: "user-1", Email: "a@b.com", Role: auth.RoleOperator})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupProtectedRouter()

	token, err := auth.GenerateToken(&auth.User{ID: "user-1", Email: "a@b.com", Role: auth.RoleOperator})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupProtectedRouter()

	token, err := auth.GenerateToken(&auth.User{ID: "admin-1", Email: "admin@b.com", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
