package reminder

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// LogNotifier só registra o lembrete; é o padrão enquanto não há canal
// de saída configurado.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: logger.OrNop(log)}
}

func (n *LogNotifier) Notify(_ context.Context, ap models.Appointment) error {
	fields := []zap.Field{
		zap.String("tenant_id", ap.TenantID.String()),
		zap.String("appointment_id", ap.ID.String()),
		zap.String("lead_id", ap.LeadID.String()),
		zap.Time("data_agendamento", ap.ScheduledAt),
	}
	if ap.Lead != nil {
		fields = append(fields,
			zap.String("lead_name", ap.Lead.Name),
			zap.String("whatsapp_number", ap.Lead.WhatsAppNumber),
		)
	}

	n.log.Info("appointment reminder", fields...)
	return nil
}
