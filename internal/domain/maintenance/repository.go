package maintenance

import "context"

// IntegrityReport conta linhas cujo tenant não existe mais.
type IntegrityReport struct {
	OrphanLeads                int64 `json:"orphan_leads"`
	OrphanAppointments         int64 `json:"orphan_appointments"`
	OrphanEnrollments          int64 `json:"orphan_enrollments"`
	OrphanNotes                int64 `json:"orphan_notes"`
	OrphanInteractions         int64 `json:"orphan_interactions"`
	ConvertedWithoutEnrollment int64 `json:"converted_without_enrollment"`
}

func (r IntegrityReport) Healthy() bool {
	return r.OrphanLeads == 0 &&
		r.OrphanAppointments == 0 &&
		r.OrphanEnrollments == 0 &&
		r.OrphanNotes == 0 &&
		r.OrphanInteractions == 0 &&
		r.ConvertedWithoutEnrollment == 0
}

type PurgeReport struct {
	Leads        int64 `json:"leads"`
	Appointments int64 `json:"appointments"`
	Enrollments  int64 `json:"enrollments"`
	Notes        int64 `json:"notes"`
	Interactions int64 `json:"interactions"`
}

type Repository interface {
	Integrity(ctx context.Context) (IntegrityReport, error)

	// PurgeOrphans apaga numa transação só linhas órfãs.
	PurgeOrphans(ctx context.Context) (PurgeReport, error)
}
