package metrics

import (
	"time"

	"github.com/google/uuid"
)

// Filter delimita leads por tenant, unidade opcional e created_at em
// [Start, End).
type Filter struct {
	TenantID uuid.UUID
	UnitID   *uuid.UUID
	Start    time.Time
	End      time.Time
}

type MonthBucket struct {
	Month     string `json:"month"`
	Total     int64  `json:"total"`
	Converted int64  `json:"converted"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DisciplineCount struct {
	Discipline string  `json:"discipline"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type RecentLead struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	WhatsAppNumber string    `json:"whatsapp_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Period struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

type Dashboard struct {
	TotalLeads     int64 `json:"total_leads"`
	ScheduledLeads int64 `json:"scheduled_leads"`
	AttendedLeads  int64 `json:"attended_leads"`
	ConvertedLeads int64 `json:"converted_leads"`
	NewLeads       int64 `json:"new_leads"`

	SchedulingRate float64 `json:"scheduling_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
	ConversionRate float64 `json:"conversion_rate"`

	MonthlyEvolution []MonthBucket     `json:"monthly_evolution"`
	PipelineData     []StatusCount     `json:"pipeline_data"`
	DisciplineData   []DisciplineCount `json:"discipline_data"`
	RecentLeads      []RecentLead      `json:"recent_leads"`

	TenantID        uuid.UUID  `json:"tenant_id"`
	UnitID          *uuid.UUID `json:"unit_id,omitempty"`
	Period          Period     `json:"period"`
	PartialFailures []string   `json:"partial_failures"`
}

// NoDiscipline agrupa leads sem disciplina informada.
const NoDiscipline = "nao_informado"

// Rate devolve num/den em percentual com uma casa (half-up), limitado a
// [0, 100]; denominador zero vale 0. A conta é inteira para empates como
// 28,75 subirem.
func Rate(num, den int64) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	if num > den {
		return 100
	}
	tenths := (num*2000 + den) / (2 * den)
	return float64(tenths) / 10
}
