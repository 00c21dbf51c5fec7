// Package memory implementa los repositorios en memoria. Se usa en pruebas y en
// desarrollo local (DB_DRIVER=memory) con las mismas reglas de unicidad que PostgreSQL.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// ErrStoreClosed se devuelve al operar sobre un Store cerrado.
var ErrStoreClosed = errors.New("memory: store cerrado")

// Store guarda todas las tablas bajo un único mutex.
type Store struct {
	mu     sync.Mutex
	closed bool
	locks  *keyedMutex

	companies          *table[entity.Company]
	companyModules     *table[entity.CompanyModule]
	users              *table[entity.User]
	clients            *table[entity.Client]
	leads              *table[entity.Lead]
	invoices           *table[entity.Invoice]
	proposals          *table[entity.Proposal]
	contracts          *table[entity.Contract]
	recurringTemplates *table[entity.RecurringTemplate]
	availability       *table[entity.AvailabilityWindow]
	bookings           *table[entity.Booking]
}

var _ repository.TxRunner = (*Store)(nil)

// Open crea un Store vacío listo para usar.
func Open() *Store {
	s := &Store{locks: newKeyedMutex()}
	s.companies = newTable[entity.Company](s, "companies")
	s.companyModules = newTable[entity.CompanyModule](s, "company_modules", columns("company_id", "module_name"))
	s.users = newTable[entity.User](s, "users", lowerColumn("email"), columns("slug"))
	s.clients = newTable[entity.Client](s, "clients")
	s.leads = newTable[entity.Lead](s, "leads")
	s.invoices = newTable[entity.Invoice](s, "invoices", columns("company_id", "number"))
	s.proposals = newTable[entity.Proposal](s, "proposals")
	s.contracts = newTable[entity.Contract](s, "contracts")
	s.recurringTemplates = newTable[entity.RecurringTemplate](s, "recurring_templates")
	s.availability = newTable[entity.AvailabilityWindow](s, "availability_windows")
	s.bookings = newTable[entity.Booking](s, "bookings", activeSlot)
	return s
}

// activeSlot replica el índice único parcial de bookings: solo las reservas no canceladas ocupan franja.
func activeSlot(attrs map[string]string) (string, bool) {
	if attrs["status"] == entity.BookingStatusCancelled {
		return "", false
	}
	return columns("host_id", "date_key", "start_time")(attrs)
}

// Close marca el Store como cerrado; las operaciones siguientes devuelven ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) acquire() (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	return s.mu.Unlock, nil
}

// Stores expone las tablas como repositorios de dominio.
func (s *Store) Stores() repository.Stores {
	return repository.Stores{
		Companies:          s.companies,
		CompanyModules:     s.companyModules,
		Users:              s.users,
		Clients:            s.clients,
		Leads:              s.leads,
		Invoices:           s.invoices,
		Proposals:          s.proposals,
		Contracts:          s.contracts,
		RecurringTemplates: s.recurringTemplates,
		Availability:       s.availability,
		Bookings:           s.bookings,
	}
}

// Run ejecuta fn con los repositorios del Store. No hay rollback: cada escritura
// se aplica en el momento.
func (s *Store) Run(ctx context.Context, fn func(repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.Stores())
}

// RunLocked serializa a todos los llamadores con la misma clave mientras dura fn.
func (s *Store) RunLocked(ctx context.Context, key string, fn func(repository.Stores) error) error {
	unlock := s.locks.lock(key)
	defer unlock()
	return s.Run(ctx, fn)
}

type refMutex struct {
	sync.Mutex
	refs int
}

// keyedMutex entrega un mutex por clave y lo libera cuando nadie lo usa.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*refMutex{}}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
