package db

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork hands out one transactional scope per logical request so the
// entity path and the stored-procedure path observe the same isolation.
type UnitOfWork struct {
	conn *gorm.DB
}

// NewUnitOfWork binds a unit of work to a GORM connection pool.
func NewUnitOfWork(conn *gorm.DB) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Conn returns a pooled handle for reads outside any transaction scope.
func (u *UnitOfWork) Conn(ctx context.Context) *gorm.DB {
	return u.conn.WithContext(ctx)
}

// Begin opens a transaction scope. The caller must Close the scope; Close
// rolls back unless Commit was called first.
func (u *UnitOfWork) Begin(ctx context.Context) (*Scope, error) {
	tx := u.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Scope{tx: tx}, nil
}

// WithinTx executes fn inside one scope, rolling back on error or panic.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	scope, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer scope.Close()

	if err := fn(scope.Conn()); err != nil {
		return err
	}
	return scope.Commit()
}

// Scope owns one live transaction. Repositories and the stored-procedure
// gateway borrow its connection; neither owns it independently.
type Scope struct {
	tx   *gorm.DB
	done bool
}

// Conn returns the transactional handle shared by both access styles.
func (s *Scope) Conn() *gorm.DB {
	return s.tx
}

// Commit finalizes the scope. Calling it twice is a no-op.
func (s *Scope) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Commit().Error
}

// Close rolls back the scope when it was not committed. Safe to defer on
// every exit path, including panics and context cancellation.
func (s *Scope) Close() {
	if s.done {
		return
	}
	s.done = true
	_ = s.tx.Rollback()
}
