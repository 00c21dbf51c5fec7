package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// NewStores construye todos los repositorios sobre un pool o una transacción.
func NewStores(q Querier) repository.Stores {
	return repository.Stores{
		Companies:          newTable(q, companySpec),
		CompanyModules:     newTable(q, companyModuleSpec),
		Users:              newTable(q, userSpec),
		Clients:            newTable(q, clientSpec),
		Leads:              newTable(q, leadSpec),
		Invoices:           newTable(q, invoiceSpec),
		Proposals:          newTable(q, proposalSpec),
		Contracts:          newTable(q, contractSpec),
		RecurringTemplates: newTable(q, recurringTemplateSpec),
		Availability:       newTable(q, availabilitySpec),
		Bookings:           newTable(q, bookingSpec),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.Stores) error) error {
	return r.run(ctx, "", fn)
}

// RunLocked toma un advisory lock de transacción sobre la clave antes de ejecutar fn.
// El lock se libera solo al terminar la transacción (commit o rollback).
func (r *TxRunner) RunLocked(ctx context.Context, key string, fn func(repository.Stores) error) error {
	return r.run(ctx, key, fn)
}

func (r *TxRunner) run(ctx context.Context, lockKey string, fn func(repository.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if lockKey != "" {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			return fmt.Errorf("advisory lock %s: %w", lockKey, err)
		}
	}
	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
