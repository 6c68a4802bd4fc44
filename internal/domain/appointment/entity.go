package appointment

import (
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ChangeStatus informa se houve mudança; repetir o status atual é no-op.
func ChangeStatus(ap *models.Appointment, to Status) (bool, error) {
	if Status(ap.Status) == to {
		return false, nil
	}
	if err := CanChange(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(to)
	return true, nil
}
