package database

import (
	"context"
	"errors"
	"fmt"
)

// StartTransaction opens a transaction on the session. Until Commit or
// RollBack every statement of the DB runs inside it. ctx governs the whole
// transaction: when it is cancelled the database rolls the transaction back.
//
// A second StartTransaction fails with ErrTransactionActive; there are no
// nested transactions or savepoints.
func (d *DB) StartTransaction(ctx context.Context) (err error) {
	ctx, end := d.instrument(ctx, opBegin, "", "", d.systemName())
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return ErrNotConnected
	}
	if d.tx != nil {
		return ErrTransactionActive
	}

	tx := d.client.WithContext(ctx).Begin()
	if tx.Error != nil {
		d.log(ctx, levelError, "Failed to start transaction", tx.Error, nil)
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	d.tx = tx
	return nil
}

// Commit makes the open transaction's changes permanent. The transaction is
// finished afterwards even when the commit fails.
func (d *DB) Commit(ctx context.Context) (err error) {
	ctx, end := d.instrument(ctx, opCommit, "", "", d.systemName())
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return ErrNoActiveTransaction
	}
	tx := d.tx
	d.tx = nil

	if err := tx.Commit().Error; err != nil {
		d.log(ctx, levelError, "Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollBack discards the open transaction's changes.
func (d *DB) RollBack(ctx context.Context) (err error) {
	ctx, end := d.instrument(ctx, opRollBack, "", "", d.systemName())
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return ErrNoActiveTransaction
	}
	tx := d.tx
	d.tx = nil

	if err := tx.Rollback().Error; err != nil {
		d.log(ctx, levelError, "Failed to roll back transaction", err, nil)
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// InTransaction reports whether a transaction is open.
func (d *DB) InTransaction() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx != nil
}

// Transaction runs fn inside a transaction. It commits when fn returns nil
// and rolls back when fn returns an error or panics; a panic is re-raised
// after the rollback.
//
// fn receives the DB itself, so statements issued through tx and through the
// DB are the same transaction.
//
// Example:
//
//	err := db.Transaction(ctx, func(tx database.Client) error {
//	    if _, err := tx.Insert(ctx, "accounts", database.Cols("owner", "ann"), nil); err != nil {
//	        return err
//	    }
//	    _, err := tx.Update(ctx, "ledger",
//	        []database.Assignment{database.Expr("balance = balance - ?", 10)},
//	        database.Cols("owner", "ann"), nil)
//	    return err
//	})
func (d *DB) Transaction(ctx context.Context, fn func(tx Client) error) error {
	if err := d.StartTransaction(ctx); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = d.RollBack(ctx)
			panic(r)
		}
	}()

	if err := fn(d); err != nil {
		if rbErr := d.RollBack(ctx); rbErr != nil && !errors.Is(rbErr, ErrNoActiveTransaction) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if !d.InTransaction() {
		// fn finished the transaction itself.
		return nil
	}
	return d.Commit(ctx)
}
