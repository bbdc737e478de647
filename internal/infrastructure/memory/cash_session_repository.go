package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

type cashSessionRepository struct {
	s *Store
}

// NewCashSessionRepository creates a cash session repository backed by s
func NewCashSessionRepository(s *Store) domainRepo.CashSessionRepository {
	return &cashSessionRepository{s: s}
}

// Create enforces one open session per business date
func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashRegisterSession) error {
	return r.s.write(ctx, func() error {
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}
		if session.IsOpen() {
			for _, existing := range r.s.sessions {
				if existing.IsOpen() {
					return apperror.NewConflictError("Open cash session already exists")
				}
			}
		}
		r.s.stamp(&session.CreatedAt, &session.UpdatedAt)
		r.s.sessions[session.ID] = *session
		return nil
	})
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashRegisterSession) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.sessions[session.ID]; !ok {
			return apperror.NewNotFoundError("Cash session")
		}
		r.s.stamp(nil, &session.UpdatedAt)
		r.s.sessions[session.ID] = *session
		return nil
	})
}

func (r *cashSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error) {
	var found *entity.CashRegisterSession
	r.s.read(func() {
		if s, ok := r.s.sessions[id]; ok {
			found = &s
		}
	})
	return found, nil
}

func (r *cashSessionRepository) GetOpen(ctx context.Context) (*entity.CashRegisterSession, error) {
	return r.latest(func(s entity.CashRegisterSession) bool { return s.IsOpen() }), nil
}

func (r *cashSessionRepository) GetLatestByDate(ctx context.Context, businessDate string) (*entity.CashRegisterSession, error) {
	return r.latest(func(s entity.CashRegisterSession) bool { return s.BusinessDate == businessDate }), nil
}

func (r *cashSessionRepository) latest(pred func(entity.CashRegisterSession) bool) *entity.CashRegisterSession {
	var found *entity.CashRegisterSession
	r.s.read(func() {
		for _, s := range r.s.sessions {
			if !pred(s) {
				continue
			}
			if found == nil || s.OpenedAt.After(found.OpenedAt) {
				clone := s
				found = &clone
			}
		}
	})
	return found
}

func (r *cashSessionRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashRegisterSession, int64, error) {
	var sessions []entity.CashRegisterSession
	r.s.read(func() {
		sessions = valuesOf(r.s.sessions)
	})
	sortByTimeDesc(sessions, func(s entity.CashRegisterSession) time.Time { return s.OpenedAt })
	return paginate(sessions, params), int64(len(sessions)), nil
}
