package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: uuid.New(), TenantID: uuid.New(), IsAdmin: true}
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	user := testUser()
	user.IsMaster = true

	raw, err := issuer.Issue(user)
	require.NoError(t, err)

	caller, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, caller.UserID)
	assert.Equal(t, user.TenantID, caller.TenantID)
	assert.True(t, caller.IsMaster)
	assert.True(t, caller.IsAdmin)
}

func TestParse_Expired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewIssuer("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingExpiry(t *testing.T) {
	claims := Claims{
		TenantID:         uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestParse_BadSubject(t *testing.T) {
	claims := Claims{
		TenantID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
