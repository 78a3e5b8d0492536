// Package memory is an in-process implementation of the repositories. It
// backs the "memory" DSN for local runs and the service and REST tests.
package memory

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

var errDuplicateKey = errors.New("duplicate key value")

type subscriptionKey struct {
	userID, subjectID int64
}

type state struct {
	seq           int64
	users         map[int64]models.User
	subjects      map[int64]models.Subject
	articles      map[int64]models.Article
	comments      map[int64]models.Comment
	subscriptions map[subscriptionKey]time.Time
}

func (s *state) clone() *state {
	return &state{
		seq:           s.seq,
		users:         maps.Clone(s.users),
		subjects:      maps.Clone(s.subjects),
		articles:      maps.Clone(s.articles),
		comments:      maps.Clone(s.comments),
		subscriptions: maps.Clone(s.subscriptions),
	}
}

// DB holds all tables. Single operations are atomic; Transaction adds
// all-or-nothing semantics for a group of them. Writes are serialized with
// transactions.
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	s    *state
	now  func() time.Time
}

func New() *DB {
	return &DB{
		s: &state{
			users:         map[int64]models.User{},
			subjects:      map[int64]models.Subject{},
			articles:      map[int64]models.Article{},
			comments:      map[int64]models.Comment{},
			subscriptions: map[subscriptionKey]time.Time{},
		},
		now: time.Now,
	}
}

type txKey struct{}

func (db *DB) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*DB)
	return owner == db
}

// lockWrite takes the write lock for a mutation. Outside a transaction it
// first waits for the running transaction to finish, so that a rollback
// never discards writes it did not make.
func (db *DB) lockWrite(ctx context.Context) (unlock func()) {
	if db.inTx(ctx) {
		db.mu.Lock()
		return db.mu.Unlock
	}
	db.txMu.Lock()
	db.mu.Lock()
	return func() {
		db.mu.Unlock()
		db.txMu.Unlock()
	}
}

// Transaction runs fn and restores the previous state if fn fails or
// panics. Writes must use the context passed to fn. A Transaction started
// with such a context joins the outer one.
func (db *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if db.inTx(ctx) {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	snapshot := db.s.clone()
	db.mu.RUnlock()

	rollback := func() {
		db.mu.Lock()
		db.s = snapshot
		db.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, db)); err != nil {
		rollback()
	}
	return err
}

func (db *DB) nextID() int64 {
	db.s.seq++
	return db.s.seq
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC()
}

func conflict(constraint string) error {
	return &common.ConstraintError{Constraint: constraint, Err: errDuplicateKey}
}

func page[T any](items []T, req models.PageRequest) []T {
	start := req.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+req.Size, len(items))
	return items[start:end]
}

func sortByTime[T any](items []T, at func(T) time.Time, id func(T) int64, asc bool) {
	sort.Slice(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			if asc {
				return ti.Before(tj)
			}
			return ti.After(tj)
		}
		if asc {
			return id(items[i]) < id(items[j])
		}
		return id(items[i]) > id(items[j])
	})
}
