package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/token"
	"github.com/BruksfildServices01/edu-crm/internal/validators"
)

type Login struct {
	accounts account.Repository
	issuer   *token.Issuer
}

func NewLogin(accounts account.Repository, issuer *token.Issuer) *Login {
	return &Login{accounts: accounts, issuer: issuer}
}

// Execute não distingue e-mail inexistente de senha errada.
func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.accounts.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	tok, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Unit: unitOf(user), Token: tok}, nil
}

type Me struct {
	accounts account.Repository
}

func NewMe(accounts account.Repository) *Me {
	return &Me{accounts: accounts}
}

type MeOutput struct {
	User *models.User `json:"user"`
	Unit *models.Unit `json:"unit"`
}

func (uc *Me) Execute(ctx context.Context, caller tenancy.Caller) (*MeOutput, error) {
	user, err := uc.accounts.FindUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return &MeOutput{User: user, Unit: unitOf(user)}, nil
}

func unitOf(u *models.User) *models.Unit {
	unit := u.Unit
	return &unit
}
