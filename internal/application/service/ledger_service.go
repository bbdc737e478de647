package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// LedgerCategoryManual is used for entries registered by hand without a category
const LedgerCategoryManual = "Manual"

// LedgerService reads the financial ledger and applies manual corrections
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	rt         Runtime
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository, rt Runtime) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, rt: rt.withDefaults()}
}

// LedgerPageInfo tells how to continue a ledger walk. NextCursor reads older
// entries, PrevCursor newer ones.
type LedgerPageInfo struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// LedgerEntriesPage is one page of entries, newest first
type LedgerEntriesPage struct {
	Items      []entity.LedgerEntry `json:"items"`
	Pagination LedgerPageInfo       `json:"pagination"`
}

// ListEntries lists entries newest first with keyset pagination
func (s *LedgerService) ListEntries(ctx context.Context, params *repository.LedgerFilterParams) (*LedgerEntriesPage, error) {
	params.Page.Normalize()
	page := params.Page

	entries, err := s.ledgerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	hasMore := len(entries) > page.Limit
	info := LedgerPageInfo{Limit: page.Limit}
	if page.Backwards {
		// the extra row sits furthest from the cursor, at the front
		if hasMore {
			entries = entries[len(entries)-page.Limit:]
		}
		info.HasNext = true
		info.HasPrev = hasMore
	} else {
		if hasMore {
			entries = entries[:page.Limit]
		}
		info.HasNext = hasMore
		info.HasPrev = page.Cursor != nil
	}

	if len(entries) > 0 {
		next := repository.LedgerCursorOf(entries[len(entries)-1]).Encode()
		prev := repository.LedgerCursorOf(entries[0]).Encode()
		info.NextCursor = &next
		info.PrevCursor = &prev
	}
	return &LedgerEntriesPage{Items: entries, Pagination: info}, nil
}

// Summary totals the entries of [from, to)
func (s *LedgerService) Summary(ctx context.Context, from, to *time.Time) (*repository.LedgerSummary, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, apperror.NewFieldError("to", "must be after from")
	}
	return s.ledgerRepo.Summary(ctx, from, to)
}

// CreateEntryInput represents a manual ledger movement
type CreateEntryInput struct {
	Direction     enum.LedgerDirection
	Description   string
	Category      string
	Amount        money.Cents
	PaymentMethod enum.PaymentMethod
	OccurredAt    *time.Time
}

// CreateEntry records a manual movement such as an expense
func (s *LedgerService) CreateEntry(ctx context.Context, input *CreateEntryInput) (*entity.LedgerEntry, error) {
	var fieldErrors []apperror.FieldError
	if input.Direction != enum.LedgerDirectionIn && input.Direction != enum.LedgerDirectionOut {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "direction", Message: "must be in or out"})
	}
	if strings.TrimSpace(input.Description) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "description", Message: "is required"})
	}
	if input.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	entry := &entity.LedgerEntry{
		Direction:     input.Direction,
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		OccurredAt:    s.rt.now(),
	}
	if entry.Category == "" {
		entry.Category = LedgerCategoryManual
	}
	if input.OccurredAt != nil {
		entry.OccurredAt = *input.OccurredAt
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry as a manual correction
func (s *LedgerService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Ledger entry")
	}
	if err := s.ledgerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.rt.logger(ctx).Info("ledger entry deleted",
		zap.String("entry_id", id.String()),
		zap.String("category", entry.Category),
		zap.Int64("amount_cents", int64(entry.Amount)),
	)
	return nil
}
