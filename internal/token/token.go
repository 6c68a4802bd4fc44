package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var (
	ErrInvalidToken  = httperr.Unauthenticated("invalid_token", "Token inválido.")
	ErrExpiredToken  = httperr.Unauthenticated("expired_token", "Token expirado.")
	ErrInvalidClaims = httperr.Unauthenticated("invalid_token_payload", "Token sem identificação válida.")
)

type Claims struct {
	TenantID string `json:"tenant_id"`
	IsMaster bool   `json:"is_master"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(user *models.User) (string, error) {
	now := i.now()
	claims := Claims{
		TenantID: user.TenantID.String(),
		IsMaster: user.IsMaster,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse validates signature and expiry and decodes the caller identity.
func (i *Issuer) Parse(raw string) (tenancy.Caller, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tenancy.Caller{}, ErrExpiredToken
		}
		return tenancy.Caller{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return tenancy.Caller{}, ErrInvalidClaims
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return tenancy.Caller{}, ErrInvalidClaims
	}

	return tenancy.Caller{
		UserID:   userID,
		TenantID: tenantID,
		IsMaster: claims.IsMaster,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
