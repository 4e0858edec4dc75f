package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one operator action recorded by the orchestrator. This is an
// operational trail of what the client did and how it ended, not an
// appointment store; the Appointment Service stays the system of record.
type Entry struct {
	ID        int64     `db:"id" json:"id"`
	Operation string    `db:"operation" json:"operation"`
	Outcome   string    `db:"outcome" json:"outcome"`
	CitaID    *int64    `db:"cita_id" json:"citaId,omitempty"`
	Actor     string    `db:"actor" json:"actor,omitempty"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Recorder is what the orchestrator depends on. A nil-safe no-op
// implementation exists for deployments without a database.
type Recorder interface {
	Record(ctx context.Context, operation, outcome string, citaID *int64, detail string)
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "audit").Logger(),
	}
}

// Record never fails the calling operation: a lost audit row is logged
// and swallowed.
func (s *Service) Record(ctx context.Context, operation, outcome string, citaID *int64, detail string) {
	entry := &Entry{
		Operation: operation,
		Outcome:   outcome,
		CitaID:    citaID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if actor, ok := ctx.Value(actorKey{}).(string); ok {
		entry.Actor = actor
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("operation", operation).Msg("failed to write audit entry")
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}

type actorKey struct{}

// WithActor tags the context with the acting admin user for audit rows.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// NopRecorder discards entries. Used when the audit database is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, string, *int64, string) {}
