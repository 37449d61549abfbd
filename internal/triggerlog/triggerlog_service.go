package triggerlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-timely/internal/domain"
	"go-timely/internal/geofence"
	"go-timely/internal/reconcile"
	"go-timely/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	writeTimeout        = 3 * time.Second
	uniqueViolation     = "23505"
	uniqueConstraintKey = "uq_trigger_source_key"
)

type Service interface {
	Observe(ctx context.Context, r reconcile.Result)
	ObserveTransition(ctx context.Context, kind geofence.Kind, ev geofence.Event, outcome geofence.Outcome)
	List(ctx context.Context, params ListParams, page, pageSize int) ([]TriggerLogResponse, int64, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("triggerlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("triggerlog.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Observe(ctx context.Context, r reconcile.Result) {
	row := s.newRow(ctx, string(r.Source), r.URL, r.Outcome.String())
	if r.Action != "" {
		row.Action = strPtr(string(r.Action))
	}
	if r.Hour != "" {
		row.Hour = strPtr(r.Hour)
	}
	if r.EventID != "" {
		row.EventID = strPtr(r.EventID)
	}
	if r.Err != nil {
		row.Error = strPtr(r.Err.Error())
	}
	s.write(ctx, row)
}

// ObserveTransition keys geofence callbacks by kind and event timestamp, the
// same pair the coordinator dedups on.
func (s *service) ObserveTransition(ctx context.Context, kind geofence.Kind, ev geofence.Event, outcome geofence.Outcome) {
	key := string(kind) + "@" + domain.FormatISO(ev.Timestamp)
	row := s.newRow(ctx, string(domain.SourceGeofence), key, string(outcome))

	action := domain.ActionClockIn
	if kind == geofence.KindExit {
		action = domain.ActionClockOut
	}
	row.Action = strPtr(string(action))
	s.write(ctx, row)
}

func (s *service) List(ctx context.Context, params ListParams, page, pageSize int) ([]TriggerLogResponse, int64, error) {
	filter := ListFilter{
		UserID:  contextutil.GetUserID(ctx),
		Source:  params.Source,
		Outcome: params.Outcome,
	}
	rows, total, err := s.repo.FindPage(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TriggerLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out, total, nil
}

func (s *service) newRow(ctx context.Context, source, key, outcome string) *TriggerLog {
	row := &TriggerLog{
		ID:        uuid.New(),
		Source:    source,
		SourceKey: key,
		Outcome:   outcome,
		CreatedAt: s.now().UTC(),
	}
	if uid := contextutil.GetUserID(ctx); uid != "" {
		row.UserID = strPtr(uid)
	}
	if did := contextutil.GetDeviceID(ctx); did != "" {
		row.DeviceID = strPtr(did)
	}
	return row
}

// write never fails the caller; trigger handling already happened.
func (s *service) write(ctx context.Context, row *TriggerLog) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	err := s.repo.Create(ctx, row)
	switch {
	case err == nil:
	case isDuplicate(err):
		s.logger.Debug("trigger already logged",
			zap.String("source", row.Source),
			zap.String("source_key", row.SourceKey),
		)
	default:
		s.logger.Error("write trigger log failed",
			zap.String("source", row.Source),
			zap.Error(err),
		)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && pgErr.ConstraintName == uniqueConstraintKey
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, uniqueConstraintKey)
}

func strPtr(s string) *string { return &s }

var _ reconcile.Observer = (*service)(nil)
var _ geofence.Observer = (*service)(nil)
