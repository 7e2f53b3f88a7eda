package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wastetracker/internal/assistant"
	"wastetracker/internal/metrics"
	"wastetracker/internal/model"
	"wastetracker/internal/repository"
	"wastetracker/internal/stats"
	"wastetracker/internal/units"
)

const (
	defaultEntryLimit = 10
	maxEntryLimit     = 100
	defaultEntrySort  = "date"
)

// Responder answers free-text messages. *assistant.Assistant implements it.
type Responder interface {
	Reply(ctx context.Context, message string) (assistant.Reply, error)
}

// AddEntryInput is the payload of a new waste entry. Quantity is a pointer so
// that a missing value can be told apart from zero.
type AddEntryInput struct {
	FoodItem string   `json:"food_item"`
	Category string   `json:"category"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Date     string   `json:"date"`
	Reason   string   `json:"reason"`
	Notes    string   `json:"notes"`
}

type AddEntryResult struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	Entry        *model.WasteEntry `json:"entry"`
	AssistantTip string            `json:"assistant_tip,omitempty"`
}

// ListEntriesParams are raw query parameters; List normalizes them.
type ListEntriesParams struct {
	Limit  int
	Offset int
	Sort   string
	Order  string
}

type EntryListResult struct {
	Total   int                `json:"total"`
	Entries []model.WasteEntry `json:"entries"`
}

// WasteService logs food waste and reports on it.
type WasteService interface {
	// Add validates and stores an entry, then asks the assistant for a tip.
	// A failing tip never fails the add.
	Add(ctx context.Context, in AddEntryInput) (*AddEntryResult, error)

	// List returns one page of entries and the total number of entries.
	List(ctx context.Context, p ListEntriesParams) (*EntryListResult, error)

	Get(ctx context.Context, id string) (*model.WasteEntry, error)
	Delete(ctx context.Context, id string) error

	// Stats summarizes entries of the named period. Unknown periods mean all time.
	Stats(ctx context.Context, period string) (*stats.Summary, error)

	// Chart builds the named chart over the period.
	Chart(ctx context.Context, kind, period string) (*stats.Chart, error)
}

type wasteService struct {
	repo    repository.WasteEntryRepository
	advisor Responder
	loc     *time.Location
	now     func() time.Time
	metrics *metrics.Domain
	log     *zap.Logger
}

// NewWasteService constructs a WasteService. advisor may be nil to skip tips.
// loc decides which calendar day "today" is for period filters.
func NewWasteService(repo repository.WasteEntryRepository, advisor Responder, loc *time.Location, m *metrics.Domain, log *zap.Logger) WasteService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &wasteService{
		repo:    repo,
		advisor: advisor,
		loc:     loc,
		now:     time.Now,
		metrics: m,
		log:     log.With(zap.String("component", "waste_service")),
	}
}

func (s *wasteService) Add(ctx context.Context, in AddEntryInput) (*AddEntryResult, error) {
	entry, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	s.metrics.EntryCreated()

	return &AddEntryResult{
		Success:      true,
		Message:      "Waste entry added successfully",
		Entry:        stored,
		AssistantTip: s.tip(ctx, stored),
	}, nil
}

func (s *wasteService) validate(in AddEntryInput) (*model.WasteEntry, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"food_item", blank(in.FoodItem)},
		{"category", blank(in.Category)},
		{"quantity", in.Quantity == nil},
		{"unit", blank(in.Unit)},
		{"date", blank(in.Date)},
		{"reason", blank(in.Reason)},
	}
	for _, f := range required {
		if f.missing {
			return nil, missingField(f.name)
		}
	}

	day, err := model.ParseDay(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, &ValidationError{Code: CodeInvalidDate, Field: "date", Message: "Invalid date format. Use YYYY-MM-DD"}
	}

	kg, err := units.ToKilograms(*in.Quantity, in.Unit)
	switch {
	case errors.Is(err, units.ErrInvalidUnit):
		return nil, &ValidationError{
			Code:    CodeInvalidUnit,
			Field:   "unit",
			Message: fmt.Sprintf("unsupported unit %q, use one of: %s", in.Unit, strings.Join(units.Names(), ", ")),
		}
	case errors.Is(err, units.ErrInvalidQuantity):
		return nil, &ValidationError{Code: CodeInvalidQuantity, Field: "quantity", Message: err.Error()}
	case err != nil:
		return nil, err
	}

	return &model.WasteEntry{
		ID:         uuid.New().String(),
		FoodItem:   strings.TrimSpace(in.FoodItem),
		Category:   strings.TrimSpace(in.Category),
		Quantity:   *in.Quantity,
		Unit:       units.Normalize(in.Unit),
		QuantityKg: kg,
		Date:       day,
		Reason:     strings.TrimSpace(in.Reason),
		Notes:      in.Notes,
		CreatedAt:  s.now().UTC(),
	}, nil
}

func (s *wasteService) tip(ctx context.Context, e *model.WasteEntry) string {
	if s.advisor == nil {
		return ""
	}
	prompt := fmt.Sprintf("I just logged %g %s of %s in the category '%s', wasted because it was '%s'. Suggest a tip or advice.",
		e.Quantity, e.Unit, e.FoodItem, e.Category, e.Reason)
	reply, err := s.advisor.Reply(ctx, prompt)
	if err != nil {
		s.log.Warn("assistant tip failed", zap.String("entry_id", e.ID), zap.Error(err))
		return ""
	}
	return reply.Text
}

func (s *wasteService) List(ctx context.Context, p ListEntriesParams) (*EntryListResult, error) {
	q := repository.EntryQuery{
		PageQuery: repository.PageQuery{Limit: p.Limit, Offset: p.Offset},
		SortBy:    p.Sort,
		Ascending: strings.EqualFold(p.Order, "asc"),
	}
	if q.Limit < 1 || q.Limit > maxEntryLimit {
		q.Limit = defaultEntryLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if _, ok := repository.EntrySortColumns[q.SortBy]; !ok {
		q.SortBy = defaultEntrySort
	}

	res, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	entries := res.Items
	if entries == nil {
		entries = []model.WasteEntry{}
	}
	return &EntryListResult{Total: res.Total, Entries: entries}, nil
}

func (s *wasteService) Get(ctx context.Context, id string) (*model.WasteEntry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *wasteService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *wasteService) Stats(ctx context.Context, period string) (*stats.Summary, error) {
	entries, err := s.entriesFor(ctx, period)
	if err != nil {
		return nil, err
	}
	sum := stats.Summarize(entries)
	return &sum, nil
}

func (s *wasteService) Chart(ctx context.Context, kind, period string) (*stats.Chart, error) {
	k, ok := stats.ParseChartKind(kind)
	if !ok {
		return nil, ErrUnknownChart
	}
	entries, err := s.entriesFor(ctx, period)
	if err != nil {
		return nil, err
	}
	chart, _ := stats.BuildChart(k, entries)
	return &chart, nil
}

func (s *wasteService) entriesFor(ctx context.Context, period string) ([]model.WasteEntry, error) {
	r := stats.ParsePeriod(period).Range(s.now().In(s.loc))
	entries, err := s.repo.ListByDateRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
