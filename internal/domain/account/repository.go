package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

var (
	ErrUserNotFound       = httperr.NotFoundErr("user_not_found", "Usuário não encontrado.")
	ErrEmailTaken         = httperr.Conflict("email_already_registered", "E-mail já cadastrado.")
	ErrInvalidCredentials = httperr.Unauthenticated("invalid_credentials", "E-mail ou senha inválidos.")
)

type Repository interface {
	// RegisterTenant cria a unidade raiz e o primeiro admin numa transação.
	RegisterTenant(
		ctx context.Context,
		unit *models.Unit,
		owner *models.User,
	) error

	FindUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	// FindUserByID carrega o usuário com a unidade.
	FindUserByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)
}
