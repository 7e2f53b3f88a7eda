// Package assistant answers chat messages about food waste. Answers come
// from the user's own statistics, from a generative model when one is
// configured, or from a fixed set of offline replies.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wastetracker/internal/metrics"
	"wastetracker/internal/model"
	"wastetracker/internal/repository"
	"wastetracker/internal/stats"
)

// ErrMessageRequired is returned for empty or whitespace-only messages.
var ErrMessageRequired = errors.New("message is required")

// Modes accepted by CHATBOT_MODE.
const (
	ModeAuto    = "auto"
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// Source tells where a reply came from.
type Source string

const (
	SourceData    Source = "data"
	SourceOnline  Source = "online"
	SourceOffline Source = "offline"
)

// recentEntries is how many of the latest entries are shared with the model.
const recentEntries = 3

type Reply struct {
	Text   string `json:"response"`
	Source Source `json:"-"`
}

// Generator produces a free-form answer from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Assistant is safe for concurrent use.
type Assistant struct {
	entries repository.WasteEntryRepository
	gen     Generator
	mode    string
	metrics *metrics.Domain
	log     *zap.Logger
}

// New builds an assistant. entries and gen may be nil; without entries no
// data answers are given and without gen every reply stays offline.
func New(entries repository.WasteEntryRepository, gen Generator, mode string, m *metrics.Domain, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = ModeAuto
	}
	return &Assistant{
		entries: entries,
		gen:     gen,
		mode:    mode,
		metrics: m,
		log:     log.With(zap.String("component", "assistant")),
	}
}

// Reply answers message. Data and model failures are logged and fall through
// to the next answer source, so the only error is ErrMessageRequired.
func (a *Assistant) Reply(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrMessageRequired
	}

	r := a.reply(ctx, message)
	a.metrics.AssistantReplied(string(r.Source))
	return r, nil
}

func (a *Assistant) reply(ctx context.Context, message string) Reply {
	var entries []model.WasteEntry
	if a.entries != nil {
		all, err := a.entries.ListByDateRange(ctx, repository.DateRange{})
		if err != nil {
			a.log.Warn("load waste data failed", zap.Error(err))
		}
		entries = all
	}

	if len(entries) > 0 {
		if text, ok := dataAnswer(message, stats.Summarize(entries)); ok {
			return Reply{Text: text, Source: SourceData}
		}
	}

	if a.mode == ModeOnline && a.gen != nil {
		text, err := a.gen.Generate(ctx, systemPrompt, buildPrompt(message, entries, a.recent(ctx, entries)))
		if err != nil {
			a.log.Warn("generative reply failed", zap.Error(err))
		} else if text = strings.TrimSpace(text); text != "" {
			return Reply{Text: text, Source: SourceOnline}
		}
	}

	return Reply{Text: offlineReplies[classify(message)], Source: SourceOffline}
}

// recent loads the newest entries shared with the model. It skips the query
// when there is no data at all.
func (a *Assistant) recent(ctx context.Context, entries []model.WasteEntry) []model.WasteEntry {
	if a.entries == nil || len(entries) == 0 {
		return nil
	}
	latest, err := a.entries.Recent(ctx, recentEntries)
	if err != nil {
		a.log.Warn("load recent entries failed", zap.Error(err))
		return nil
	}
	return latest
}

// dataAnswer answers the three questions that can be read straight from stats.
func dataAnswer(message string, s stats.Summary) (string, bool) {
	q := strings.ToLower(message)
	switch {
	case strings.Contains(q, "total waste"):
		return fmt.Sprintf("Total recorded waste: %.2f kg", s.TotalKg), true
	case strings.Contains(q, "most wasted"):
		return fmt.Sprintf("Most wasted category: %s", s.MostWastedCategory), true
	case strings.Contains(q, "average"):
		return fmt.Sprintf("Average daily waste: %.2f kg", s.AvgDailyKg), true
	}
	return "", false
}
