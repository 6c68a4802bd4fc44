package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/token"
)

func newRouter(issuer *token.Issuer, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append([]gin.HandlerFunc{Auth(issuer)}, guards...)
	chain = append(chain, func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant_id": caller.TenantID.String()})
	})
	r.GET("/private", chain...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	user := &models.User{ID: uuid.New(), TenantID: uuid.New()}
	raw, err := issuer.Issue(user)
	require.NoError(t, err)

	r := newRouter(issuer)

	t.Run("valid token", func(t *testing.T) {
		w := do(r, "Bearer "+raw)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.TenantID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := do(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing_authorization_header")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := do(r, "Basic "+raw)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_authorization_header")
	})

	t.Run("foreign signature", func(t *testing.T) {
		other, err := token.NewIssuer("other", time.Hour).Issue(user)
		require.NoError(t, err)

		w := do(r, "Bearer "+other)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := token.Claims{
			TenantID: user.TenantID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				IssuedAt:  jwt.NewNumericDate(past),
				ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		w := do(r, "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired_token")
	})
}

func TestRoleGuards(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)

	member := &models.User{ID: uuid.New(), TenantID: uuid.New()}
	admin := &models.User{ID: uuid.New(), TenantID: uuid.New(), IsAdmin: true}
	master := &models.User{ID: uuid.New(), TenantID: uuid.New(), IsMaster: true}

	tests := []struct {
		name   string
		guard  gin.HandlerFunc
		user   *models.User
		status int
	}{
		{"admin guard rejects member", RequireAdmin(), member, http.StatusForbidden},
		{"admin guard accepts admin", RequireAdmin(), admin, http.StatusOK},
		{"admin guard accepts master", RequireAdmin(), master, http.StatusOK},
		{"master guard rejects admin", RequireMaster(), admin, http.StatusForbidden},
		{"master guard accepts master", RequireMaster(), master, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := issuer.Issue(tt.user)
			require.NoError(t, err)

			w := do(newRouter(issuer, tt.guard), "Bearer "+raw)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCallerFromWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CallerFrom(c)
	assert.False(t, ok)

	c.Set(ContextCaller, tenancy.Caller{IsMaster: true})
	caller, ok := CallerFrom(c)
	assert.True(t, ok)
	assert.True(t, caller.IsMaster)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://painel.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://painel.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
}
