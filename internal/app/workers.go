package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/kairohq/internexplore_backend/internal/service/application"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
	"github.com/kairohq/internexplore_backend/pkg/email"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc     fx.Lifecycle
	NC     *nats.Conn
	Store  *postgres.Store
	Mailer *email.Client
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Info("workers: NATS disabled, skipping")
		return
	}
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startRecruiterNotifyWorker(p.NC, p.Store, p.Mailer)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// recruiter_notify_worker
// ---------------------------------------------------------------------------

// startRecruiterNotifyWorker emails the posting recruiter whenever a new
// application lands. Payload is the application id.
func startRecruiterNotifyWorker(nc *nats.Conn, store *postgres.Store, mailer *email.Client) {
	_, err := nc.Subscribe(application.SubjectApplicationCreated, func(msg *nats.Msg) {
		appIDStr := strings.TrimSpace(string(msg.Data))
		appID, err := uuid.Parse(appIDStr)
		if err != nil {
			return
		}

		ctx := context.Background()

		detail, err := store.GetApplicationDetail(ctx, appID)
		if err != nil {
			slog.Warn("recruiter_notify_worker: application not found", "id", appIDStr, "err", err)
			return
		}
		if detail.RecruiterEmail == "" {
			return
		}

		if mailer == nil {
			slog.Debug("recruiter_notify_worker: email disabled", "application_id", appIDStr)
			return
		}

		m := email.BuildApplicationReceivedEmail(email.ApplicationEmailData{
			RecruiterEmail:  detail.RecruiterEmail,
			ApplicantName:   detail.ApplicantName,
			InternshipTitle: detail.InternshipTitle,
		})
		if err := mailer.Send(ctx, m); err != nil {
			slog.Warn("recruiter_notify_worker: send failed", "application_id", appIDStr, "err", err)
		}
	})
	if err != nil {
		slog.Error("recruiter_notify_worker: subscribe failed", "err", err)
	}

	slog.Info("recruiter_notify_worker: started")
}
