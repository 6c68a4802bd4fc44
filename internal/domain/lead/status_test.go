package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

func TestParseStatus_ClosedSet(t *testing.T) {
	for _, s := range Pipeline {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStatus("  Follow_Up_2 ")
	require.NoError(t, err)
	assert.Equal(t, StatusFollowUp2, got)

	for _, raw := range []string{"", "bogus_status", "follow_up_4", "matriculada"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, raw)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     error
	}{
		{StatusNew, StatusScheduled, nil},
		{StatusNew, StatusFollowUp2, nil},
		{StatusScheduled, StatusFollowUp1, nil},
		{StatusFollowUp3, StatusOnHold, nil},
		{StatusNew, StatusOnHold, nil},
		{StatusFollowUp1, StatusFollowUp1, nil},
		{StatusFollowUp2, StatusScheduled, ErrBackwardTransition},
		{StatusScheduled, StatusNew, ErrBackwardTransition},
		{StatusScheduled, StatusEnrolled, ErrEnrollmentRequired},
		{StatusEnrolled, StatusFollowUp1, ErrTerminalStatus},
		{StatusOnHold, StatusScheduled, ErrTerminalStatus},
		{StatusEnrolled, StatusEnrolled, nil},
		{"contato_antigo", StatusFollowUp1, nil},
		{"contato_antigo", StatusNew, nil},
		{"contato_antigo", StatusEnrolled, ErrEnrollmentRequired},
		{StatusNew, "bogus_status", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCanEnroll(t *testing.T) {
	assert.NoError(t, CanEnroll(StatusScheduled))
	assert.NoError(t, CanEnroll(StatusFollowUp3))
	assert.ErrorIs(t, CanEnroll(StatusNew), ErrNotEnrollable)
	assert.ErrorIs(t, CanEnroll(StatusOnHold), ErrNotEnrollable)
	assert.ErrorIs(t, CanEnroll(StatusEnrolled), ErrAlreadyEnrolled)
}

func TestRank_UnknownLast(t *testing.T) {
	assert.Equal(t, 0, Rank(StatusNew))
	assert.Equal(t, 6, Rank(StatusOnHold))
	assert.Equal(t, len(Pipeline), Rank("qualquer"))
}

func TestChangeStatus(t *testing.T) {
	l := &models.Lead{Status: string(StatusNew)}

	changed, err := ChangeStatus(l, StatusScheduled)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusScheduled), l.Status)

	changed, err = ChangeStatus(l, StatusScheduled)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = ChangeStatus(l, StatusNew)
	assert.ErrorIs(t, err, ErrBackwardTransition)
	assert.Equal(t, string(StatusScheduled), l.Status)
}

func TestEnroll_SetsConverted(t *testing.T) {
	l := &models.Lead{Status: string(StatusFollowUp1)}

	require.NoError(t, Enroll(l))
	assert.Equal(t, string(StatusEnrolled), l.Status)
	assert.True(t, l.Converted)

	assert.ErrorIs(t, Enroll(l), ErrAlreadyEnrolled)
}

func TestSetAttended(t *testing.T) {
	l := &models.Lead{}

	assert.ErrorIs(t, SetAttended(l, true, false), ErrAppointmentRequired)
	assert.False(t, l.Attended)

	require.NoError(t, SetAttended(l, true, true))
	assert.True(t, l.Attended)

	require.NoError(t, SetAttended(l, false, false))
	assert.False(t, l.Attended)
}

func TestSetConverted(t *testing.T) {
	l := &models.Lead{Status: string(StatusScheduled)}
	assert.ErrorIs(t, SetConverted(l, true), ErrEnrollmentRequired)
	assert.False(t, l.Converted)

	enrolled := &models.Lead{Status: string(StatusEnrolled), Converted: true}
	assert.ErrorIs(t, SetConverted(enrolled, false), ErrConvertedLocked)
	assert.NoError(t, SetConverted(enrolled, true))

	legacy := &models.Lead{Status: string(StatusFollowUp1), Converted: true}
	require.NoError(t, SetConverted(legacy, false))
	assert.False(t, legacy.Converted)
}

func TestSchedule(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	l := &models.Lead{Status: string(StatusNew)}
	require.NoError(t, Schedule(l, at))
	assert.Equal(t, string(StatusScheduled), l.Status)
	require.NotNil(t, l.ScheduledDate)
	assert.True(t, at.Equal(*l.ScheduledDate))

	fu := &models.Lead{Status: string(StatusFollowUp2)}
	require.NoError(t, Schedule(fu, at))
	assert.Equal(t, string(StatusFollowUp2), fu.Status)

	done := &models.Lead{Status: string(StatusEnrolled)}
	assert.ErrorIs(t, Schedule(done, at), ErrTerminalStatus)
}

func TestParseInterest(t *testing.T) {
	got, err := ParseInterest(" Quente ")
	require.NoError(t, err)
	assert.Equal(t, InterestHot, got)

	_, err = ParseInterest("morno-quente")
	assert.ErrorIs(t, err, ErrInvalidInterest)
}

func TestListFilterOffset(t *testing.T) {
	assert.Equal(t, 0, ListFilter{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, 0, ListFilter{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, ListFilter{Page: 3, Limit: 20}.Offset())
}
