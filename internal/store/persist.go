package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendbook/internal/model"
)

// Keys of the persisted state.
const (
	KeyExpenses = "expenses"
	KeyTheme    = "theme"
)

// record is the persisted shape of an expense:
// {id: number, date: string, title: string, amount: number}
type record struct {
	ID     int64       `json:"id"`
	Date   string      `json:"date"`
	Title  string      `json:"title"`
	Amount json.Number `json:"amount"`
}

// Adapter reads and writes the expense collection and theme preference.
// Missing or corrupt data is reported as "no data", never as an error.
type Adapter struct {
	kv  KeyValue
	log zerolog.Logger
}

// NewAdapter wraps a KeyValue store.
func NewAdapter(kv KeyValue, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log.With().Str("component", "store").Logger()}
}

// Load returns the persisted expenses, or an empty slice when the blob is
// absent or unparseable. Individual records that break the invariants are
// skipped.
func (a *Adapter) Load() []model.Expense {
	raw, ok, err := a.kv.Get(KeyExpenses)
	if err != nil {
		a.log.Warn().Err(err).Msg("reading expenses failed, starting empty")
		return []model.Expense{}
	}
	if !ok || raw == "" {
		return []model.Expense{}
	}

	var recs []record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		a.log.Warn().Err(err).Msg("expenses blob is corrupt, starting empty")
		return []model.Expense{}
	}

	out := make([]model.Expense, 0, len(recs))
	for _, r := range recs {
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			a.log.Warn().Int64("id", r.ID).Msg("skipping record with unparseable amount")
			continue
		}
		e := model.Expense{ID: r.ID, Date: r.Date, Title: r.Title, Amount: amount}
		if err := e.Validate(); err != nil {
			a.log.Warn().Int64("id", r.ID).Err(err).Msg("skipping invalid record")
			continue
		}
		out = append(out, e)
	}
	return out
}

// SaveAll writes the full collection synchronously.
func (a *Adapter) SaveAll(expenses []model.Expense) error {
	recs := make([]record, len(expenses))
	for i, e := range expenses {
		recs[i] = record{
			ID:     e.ID,
			Date:   e.Date,
			Title:  e.Title,
			Amount: json.Number(e.Amount.String()),
		}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}
	if err := a.kv.Put(KeyExpenses, string(data)); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}
	a.log.Debug().Int("count", len(expenses)).Msg("expenses saved")
	return nil
}

// LoadTheme returns the persisted theme preference, if any.
func (a *Adapter) LoadTheme() (model.Theme, bool) {
	raw, ok, err := a.kv.Get(KeyTheme)
	if err != nil || !ok {
		return "", false
	}
	var name string
	if err := json.Unmarshal([]byte(raw), &name); err != nil {
		a.log.Warn().Err(err).Msg("theme value is corrupt, ignoring")
		return "", false
	}
	t, err := model.ParseTheme(name)
	if err != nil {
		return "", false
	}
	return t, true
}

// SaveTheme persists the theme preference.
func (a *Adapter) SaveTheme(t model.Theme) error {
	data, err := json.Marshal(string(t))
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}
	if err := a.kv.Put(KeyTheme, string(data)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}
