package auth

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/token"
	"github.com/BruksfildServices01/edu-crm/internal/validators"
)

const minPasswordLen = 6

var (
	ErrUnitNameRequired = httperr.InvalidArgument("unit_name_required", "Nome da unidade é obrigatório.")
	ErrNameRequired     = httperr.InvalidArgument("name_required", "Nome é obrigatório.")
	ErrWeakPassword     = httperr.InvalidArgument("weak_password", "A senha precisa ter pelo menos 6 caracteres.")
	ErrMalformedEmail   = httperr.InvalidArgument("invalid_email", "E-mail inválido.")
	ErrInvalidEmail     = httperr.InvalidArgument("invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
)

type RegisterInput struct {
	UnitName    string
	UnitPhone   string
	UnitAddress string

	Name     string
	Email    string
	Password string
	Phone    string
}

// Session é a resposta de register e login.
type Session struct {
	User  *models.User `json:"user"`
	Unit  *models.Unit `json:"unit"`
	Token string       `json:"token"`
}

type Register struct {
	accounts account.Repository
	issuer   *token.Issuer
	audit    *audit.Dispatcher
	log      *zap.Logger

	// checkEmail resolve o domínio (MX ou A); troca em testes.
	checkEmail func(email string) bool
}

func NewRegister(
	accounts account.Repository,
	issuer *token.Issuer,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Register {
	return &Register{
		accounts:   accounts,
		issuer:     issuer,
		audit:      audit,
		log:        logger.OrNop(log),
		checkEmail: validators.IsEmailDomainValid,
	}
}

// WithEmailCheck substitui a verificação de domínio do e-mail.
func (uc *Register) WithEmailCheck(fn func(email string) bool) *Register {
	uc.checkEmail = fn
	return uc
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {

	// 1️⃣ validação
	unitName := strings.TrimSpace(in.UnitName)
	if unitName == "" {
		return nil, ErrUnitNameRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailWellFormed(email) {
		return nil, ErrMalformedEmail
	}
	if !uc.checkEmail(email) {
		return nil, ErrInvalidEmail
	}

	// 2️⃣ hash
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	unit := &models.Unit{
		Name:    unitName,
		Phone:   strings.TrimSpace(in.UnitPhone),
		Address: strings.TrimSpace(in.UnitAddress),
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		IsAdmin:      true,
	}

	// 3️⃣ unidade + admin na mesma transação
	if err := uc.accounts.RegisterTenant(ctx, unit, user); err != nil {
		return nil, err
	}

	tok, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: unit.ID,
		UserID:   &user.ID,
		Action:   "tenant_registered",
		Entity:   "unit",
		EntityID: &unit.ID,
	})
	uc.log.Info("tenant registered",
		zap.String("tenant_id", unit.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	return &Session{User: user, Unit: unit, Token: tok}, nil
}
