// Package txmanager runs functions inside a database transaction carried by the context.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, когда не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда PostgreSQL отменил транзакцию
	// из-за конфликта сериализации или взаимной блокировки
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// Beginner открывает транзакции. Реализуется *dbmetrics.DB.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db Beginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db Beginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("%w: %w", ErrCommitTx, err))
	}

	return nil
}

// classify помечает ошибки сериализации, чтобы вызывающий код мог отличить их от прочих
func classify(err error) error {
	if IsSerializationFailure(err) && !errors.Is(err, ErrSerializationFailure) {
		return fmt.Errorf("%w: %w", ErrSerializationFailure, err)
	}
	return err
}

// IsSerializationFailure сообщает, вызвана ли ошибка конфликтом сериализации PostgreSQL
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	return errors.Is(err, ErrSerializationFailure)
}
