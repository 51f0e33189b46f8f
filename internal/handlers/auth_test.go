package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/config"
	"github.com/abdaljehan03-maker/clinic-project/internal/middleware"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
)

func testStaffConfig(t *testing.T) *config.Config {
	t.Helper()
	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hashing test password: %v", err)
		}
		return string(h)
	}
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 30,
		Accounts: []config.StaffAccount{
			{Username: "admin", PasswordHash: hash("admin-pass"), Role: config.RoleAdmin},
			{Username: "reception", PasswordHash: hash("reception-pass"), Role: config.RoleReception},
		},
	}
}

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testStaffConfig(t)

	authHandler := NewAuthHandler(cfg)
	treatmentHandler := NewTreatmentHandler(clinic.NewCatalog(), sse.NewBroadcaster())

	router := gin.New()
	router.POST("/auth/login", authHandler.Login)

	private := router.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	private.GET("/auth/profile", authHandler.GetProfile)

	admin := private.Group("")
	admin.Use(middleware.RoleAuthMiddleware(config.RoleAdmin))
	admin.PUT("/treatments", treatmentHandler.ReplaceNames)

	return router
}

func login(t *testing.T, router *gin.Engine, username, password string) (int, string) {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		return w.Code, ""
	}
	data := resp.Data.(map[string]interface{})
	token, _ := data["accessToken"].(string)
	return w.Code, token
}

func TestLogin(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("valid credentials", func(t *testing.T) {
		code, token := login(t, router, "reception", "reception-pass")
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if token == "" {
			t.Fatalf("login returned no token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		code, _ := login(t, router, "reception", "nope")
		if code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		code, _ := login(t, router, "ghost", "nope")
		if code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("rejects missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("accepts a bearer token", func(t *testing.T) {
		_, token := login(t, router, "reception", "reception-pass")
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"reception"`) {
			t.Errorf("profile does not carry the username: %s", w.Body.String())
		}
	})
}

func TestRoleEnforcement(t *testing.T) {
	router := setupAuthRouter(t)
	body := `{"names":["Cleaning"]}`

	t.Run("reception cannot edit the catalog", func(t *testing.T) {
		_, token := login(t, router, "reception", "reception-pass")
		req := httptest.NewRequest(http.MethodPut, "/treatments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin can edit the catalog", func(t *testing.T) {
		_, token := login(t, router, "admin", "admin-pass")
		req := httptest.NewRequest(http.MethodPut, "/treatments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}
