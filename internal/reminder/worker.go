// Package reminder é a ponte entre agendamentos e o canal de aviso: a
// cada ciclo procura agendamentos próximos de cada tenant e notifica uma
// única vez por agendamento.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
)

// Notifier entrega o lembrete (WhatsApp, e-mail, log).
type Notifier interface {
	Notify(ctx context.Context, ap models.Appointment) error
}

// Dedup evita reenviar o mesmo lembrete entre ciclos.
type Dedup interface {
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type Config struct {
	Interval time.Duration
	Window   time.Duration
}

// Summary resume um ciclo.
type Summary struct {
	Tenants int
	Sent    int
	Skipped int
	Failed  int
}

type Worker struct {
	units        unit.Repository
	appointments appointment.Repository
	notifier     Notifier
	dedup        Dedup
	cfg          Config
	log          *zap.Logger
	now          func() time.Time
}

func NewWorker(
	units unit.Repository,
	appointments appointment.Repository,
	notifier Notifier,
	dedup Dedup,
	cfg Config,
	log *zap.Logger,
) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Window <= 0 {
		cfg.Window = 24 * time.Hour
	}
	return &Worker{
		units:        units,
		appointments: appointments,
		notifier:     notifier,
		dedup:        dedup,
		cfg:          cfg,
		log:          logger.OrNop(log),
		now:          time.Now,
	}
}

// Start roda um ciclo imediatamente e depois a cada Interval, até ctx
// ser cancelado.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("reminder worker started",
		zap.Duration("interval", w.cfg.Interval),
		zap.Duration("window", w.cfg.Window),
	)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		w.safeRun(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) safeRun(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("reminder run panicked", zap.Any("panic", r))
		}
	}()

	sum, err := w.RunOnce(ctx)
	if err != nil {
		w.log.Error("reminder run failed", zap.Error(err))
		return
	}
	w.log.Info("reminder run finished",
		zap.Int("tenants", sum.Tenants),
		zap.Int("sent", sum.Sent),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
}

// RunOnce percorre todos os tenants. A falha de um tenant é registrada e
// o ciclo segue para o próximo.
func (w *Worker) RunOnce(ctx context.Context) (Summary, error) {
	var sum Summary

	tenants, err := w.units.ListTenantIDs(ctx)
	if err != nil {
		return sum, err
	}

	from := w.now()
	to := from.Add(w.cfg.Window)

	for _, tenantID := range tenants {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		sum.Tenants++

		if err := w.runTenant(ctx, tenantID, from, to, &sum); err != nil {
			sum.Failed++
			observability.Reminders.WithLabelValues(observability.OutcomeFailed).Inc()
			w.log.Warn("reminder tenant failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
	return sum, nil
}

func (w *Worker) runTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time, sum *Summary) error {
	upcoming, err := w.appointments.ListUpcoming(ctx, tenantID, from, to)
	if err != nil {
		return err
	}

	for _, ap := range upcoming {
		first, err := w.dedup.FirstSeen(ctx, dedupKey(ap.ID), w.cfg.Window)
		if err != nil {
			return err
		}
		if !first {
			sum.Skipped++
			observability.Reminders.WithLabelValues(observability.OutcomeSkipped).Inc()
			continue
		}

		if err := w.notifier.Notify(ctx, ap); err != nil {
			sum.Failed++
			observability.Reminders.WithLabelValues(observability.OutcomeFailed).Inc()
			w.log.Warn("reminder notify failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("appointment_id", ap.ID.String()),
				zap.Error(err),
			)
			continue
		}

		sum.Sent++
		observability.Reminders.WithLabelValues(observability.OutcomeSent).Inc()
	}
	return nil
}

func dedupKey(appointmentID uuid.UUID) string {
	return fmt.Sprintf("reminder:%s", appointmentID)
}
