package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

const (
	lockTTL     = 10 * time.Second
	lockTimeout = 5 * time.Second
)

// ContactLocker serializa o lookup-before-insert de um mesmo contato.
type ContactLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

var (
	ErrContactBusy    = httperr.Unavailable("contact_busy", "Outra mensagem deste contato está em processamento.")
	ErrUnitNotInScope = httperr.PermissionDenied("unit_not_in_tenant", "Unidade não pertence ao tenant.")
)

func contactKey(tenantID uuid.UUID, number string) string {
	return fmt.Sprintf("contact:%s:%s", tenantID, number)
}

func lockContact(ctx context.Context, locker ContactLocker, tenantID uuid.UUID, number string) (func(), error) {
	lctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	release, err := locker.Lock(lctx, contactKey(tenantID, number), lockTTL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrContactBusy
		}
		return nil, err
	}
	return release, nil
}

// resolveUnit devolve a unidade de captura: a informada (validada contra
// o tenant) ou a raiz do tenant.
func resolveUnit(
	ctx context.Context,
	units unit.Repository,
	tenantID uuid.UUID,
	unitID *uuid.UUID,
) (*models.Unit, error) {

	id := tenantID
	if unitID != nil {
		id = *unitID
	}

	u, err := units.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.TenantID != tenantID {
		return nil, ErrUnitNotInScope
	}
	return u, nil
}

func placeholderName(prefix, number string) string {
	if len(number) > 4 {
		number = number[len(number)-4:]
	}
	if number == "" {
		return prefix
	}
	return prefix + " " + number
}
