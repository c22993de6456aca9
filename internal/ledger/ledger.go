// Package ledger owns the in-memory expense collection for a session: form
// submission, edit mode, deletion and the single-slot timed undo.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendbook/internal/model"
)

var (
	// ErrNotFound is returned when an expense ID is not in the collection.
	ErrNotFound = errors.New("expense not found")
	// ErrNothingToUndo is returned when no deletion is pending or it expired.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// DefaultUndoWindow is how long a deleted expense stays recoverable.
const DefaultUndoWindow = 5 * time.Second

// Persister writes the full collection after every mutation.
type Persister interface {
	SaveAll(expenses []model.Expense) error
}

// pendingUndo is the single-slot buffer holding the last deleted expense.
type pendingUndo struct {
	expense model.Expense
	timer   Timer
	gen     uint64
}

// Session is the single source of truth for one application session.
// All methods are safe to call from the UI goroutine while the undo timer
// fires on its own goroutine.
type Session struct {
	mu       sync.Mutex
	expenses []model.Expense

	editing bool
	editID  int64

	undo    *pendingUndo
	undoGen uint64

	persist  Persister
	clock    Clock
	window   time.Duration
	onExpire func(model.Expense)
	log      zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used for IDs and the undo timer.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithUndoWindow sets how long a deletion can be undone.
func WithUndoWindow(d time.Duration) Option { return func(s *Session) { s.window = d } }

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l.With().Str("component", "ledger").Logger() }
}

// OnUndoExpired registers a hook run (on the timer goroutine) after a pending
// undo lapses without being used.
func OnUndoExpired(f func(model.Expense)) Option { return func(s *Session) { s.onExpire = f } }

// New creates a session over an initial collection.
func New(initial []model.Expense, p Persister, opts ...Option) *Session {
	s := &Session{
		expenses: append([]model.Expense(nil), initial...),
		persist:  p,
		clock:    SystemClock,
		window:   DefaultUndoWindow,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Expenses returns a copy of the collection in store order.
func (s *Session) Expenses() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Expense(nil), s.expenses...)
}

// Len returns the number of expenses.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expenses)
}

// Total returns the sum of all current amounts.
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Total(s.expenses)
}

// Find looks up an expense by ID.
func (s *Session) Find(id int64) (model.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Expense{}, false
	}
	return s.expenses[i], true
}

// EditingID reports the current edit target, if any.
func (s *Session) EditingID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editID, s.editing
}

// Submit validates the form input and either updates the expense being
// edited (same ID, same position) or appends a new one whose ID is the
// submission timestamp in milliseconds. Edit mode is left on success.
// Validation failures never mutate the collection.
func (s *Session) Submit(date, title, amount string) (model.Expense, error) {
	e := model.Expense{
		Date:  strings.TrimSpace(date),
		Title: strings.TrimSpace(title),
	}
	amt, amtErr := model.ParseAmount(amount)
	e.Amount = amt
	if err := e.Validate(); err != nil {
		// Date and title problems are reported before amount parse errors.
		if errors.Is(err, model.ErrAmountNotPositive) && amtErr != nil {
			err = amtErr
		}
		return model.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]model.Expense(nil), s.expenses...)
	if s.editing {
		i := s.indexOf(s.editID)
		if i < 0 {
			s.editing = false
			return model.Expense{}, fmt.Errorf("editing %d: %w", s.editID, ErrNotFound)
		}
		e.ID = s.editID
		next[i] = e
	} else {
		e.ID = s.clock.Now().UnixMilli()
		next = append(next, e)
	}

	if err := s.commit(next); err != nil {
		return model.Expense{}, err
	}
	if s.editing {
		s.log.Info().Int64("id", e.ID).Msg("expense updated")
	} else {
		s.log.Info().Int64("id", e.ID).Msg("expense created")
	}
	s.editing = false
	s.editID = 0
	return e, nil
}

// BeginEdit enters edit mode for id and returns the record for the form.
// Starting a new edit while one is in progress retargets silently.
func (s *Session) BeginEdit(id int64) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("edit %d: %w", id, ErrNotFound)
	}
	s.editing = true
	s.editID = id
	return s.expenses[i], nil
}

// CancelEdit returns to idle without changing anything.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
	s.editID = 0
}

// Delete removes id and holds it in the undo buffer, replacing (and losing)
// whatever was pending before. Callers confirm with the user first.
func (s *Session) Delete(id int64) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	deleted := s.expenses[i]

	next := make([]model.Expense, 0, len(s.expenses)-1)
	next = append(next, s.expenses[:i]...)
	next = append(next, s.expenses[i+1:]...)
	if err := s.commit(next); err != nil {
		return model.Expense{}, err
	}

	if s.editing && s.editID == id {
		s.editing = false
		s.editID = 0
	}

	if s.undo != nil {
		s.undo.timer.Stop()
		s.log.Info().Int64("id", s.undo.expense.ID).Msg("pending undo discarded by newer delete")
	}
	s.undoGen++
	gen := s.undoGen
	s.undo = &pendingUndo{
		expense: deleted,
		gen:     gen,
		timer:   s.clock.AfterFunc(s.window, func() { s.expire(gen) }),
	}

	s.log.Info().Int64("id", id).Msg("expense deleted")
	return deleted, nil
}

// Undo restores the pending deleted expense at the end of the collection.
func (s *Session) Undo() (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil {
		return model.Expense{}, ErrNothingToUndo
	}
	restored := s.undo.expense
	next := append(append([]model.Expense(nil), s.expenses...), restored)
	if err := s.commit(next); err != nil {
		return model.Expense{}, err
	}
	s.undo.timer.Stop()
	s.undo = nil

	s.log.Info().Int64("id", restored.ID).Msg("delete undone")
	return restored, nil
}

// PendingUndo reports the expense that can still be restored, if any.
func (s *Session) PendingUndo() (model.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo == nil {
		return model.Expense{}, false
	}
	return s.undo.expense, true
}

// expire clears the undo buffer if gen is still the live deletion.
func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	if s.undo == nil || s.undo.gen != gen {
		s.mu.Unlock()
		return
	}
	lost := s.undo.expense
	s.undo = nil
	hook := s.onExpire
	s.mu.Unlock()

	s.log.Info().Int64("id", lost.ID).Msg("undo window expired")
	if hook != nil {
		hook(lost)
	}
}

// commit persists next and, only on success, makes it the collection.
// Must be called with s.mu held.
func (s *Session) commit(next []model.Expense) error {
	if s.persist != nil {
		if err := s.persist.SaveAll(next); err != nil {
			s.log.Error().Err(err).Msg("persisting expenses failed")
			return fmt.Errorf("persisting expenses: %w", err)
		}
	}
	s.expenses = next
	return nil
}

func (s *Session) indexOf(id int64) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
