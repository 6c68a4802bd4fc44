package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" Realizado")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, got)

	_, err = ParseStatus("scheduled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeStatus(t *testing.T) {
	ap := &models.Appointment{Status: string(InitialStatus())}

	changed, err := ChangeStatus(ap, StatusNoShow)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusNoShow), ap.Status)

	changed, err = ChangeStatus(ap, StatusNoShow)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = ChangeStatus(ap, StatusDone)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, httperr.KindInvalidArgument, httperr.KindOf(err))
	assert.Equal(t, string(StatusNoShow), ap.Status)
}
