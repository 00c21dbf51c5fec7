// Package booking implementa la agenda pública de un anfitrión y el arbitraje de reservas.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/rs/zerolog"
)

// Motivos de conflicto reportados a métricas.
const (
	ConflictSameStart  = "same_start"
	ConflictOverlap    = "overlap"
	ConflictConstraint = "constraint"
)

// Config parámetros del motor de reservas.
type Config struct {
	HorizonDays     int
	CacheTTL        time.Duration
	DefaultTimezone string
}

// Option ajusta el Service.
type Option func(*Service)

// WithCache activa la caché de agendas.
func WithCache(c CalendarCache) Option { return func(s *Service) { s.cache = c } }

// WithRecorder conecta las métricas.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.metrics = r } }

// WithModuleChecker exige que la empresa del anfitrión tenga el módulo de agenda activo.
func WithModuleChecker(m ModuleChecker) Option { return func(s *Service) { s.modules = m } }

// WithClock reemplaza el reloj (pruebas).
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// Service calcula agendas y crea, cancela y reprograma reservas.
type Service struct {
	gw      *gateway.Gateway
	tx      repository.TxRunner
	cfg     Config
	log     zerolog.Logger
	cache   CalendarCache
	metrics Recorder
	modules ModuleChecker
	now     func() time.Time

	// gens cuenta las invalidaciones por anfitrión; una agenda calculada mientras
	// cambió la generación no se guarda.
	genMu sync.Mutex
	gens  map[string]uint64
}

// NewService construye el motor de reservas.
func NewService(gw *gateway.Gateway, tx repository.TxRunner, cfg Config, log zerolog.Logger, opts ...Option) *Service {
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = scheduling.DefaultHorizonDays
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "UTC"
	}
	s := &Service{
		gw:      gw,
		tx:      tx,
		cfg:     cfg,
		log:     log.With().Str("component", "booking").Logger(),
		metrics: nopRecorder{},
		now:     time.Now,
		gens:    map[string]uint64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// hostPrincipal es la identidad con la que se leen y escriben los datos de un anfitrión
// en los flujos públicos: su empresa y solo sus propias franjas y reservas.
func hostPrincipal(host *entity.User) access.Principal {
	return access.Principal{ID: host.ID, TenantID: host.CompanyID, Role: entity.RoleMember}
}

// ResolveHost busca un anfitrión activo por id o por slug.
func (s *Service) ResolveHost(ctx context.Context, ref string) (*entity.User, error) {
	if ref == "" {
		return nil, domain.ErrNotFound
	}
	users := s.gw.Stores().Users
	host, err := users.FindOne(ctx, repository.Filter{"id": ref})
	if err != nil {
		return nil, err
	}
	if host == nil {
		if host, err = users.FindOne(ctx, repository.Filter{"slug": ref}); err != nil {
			return nil, err
		}
	}
	if host == nil || !host.IsActive() || host.CompanyID == "" {
		return nil, domain.ErrNotFound
	}
	if s.modules != nil {
		ok, err := s.modules.HasActiveModule(ctx, host.CompanyID, entity.ModuleScheduling)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
	}
	return host, nil
}

func (s *Service) hostZone(host *entity.User) (*time.Location, error) {
	name := host.Timezone
	if name == "" {
		name = s.cfg.DefaultTimezone
	}
	return scheduling.LoadZone(name)
}

func (s *Service) calendarKey(hostID, today string) string {
	return fmt.Sprintf("calendar:%s:%d:%s", hostID, s.cfg.HorizonDays, today)
}

// template carga las ventanas activas del anfitrión y arma su plantilla semanal.
func (s *Service) template(ctx context.Context, scope *gateway.Scope) (scheduling.WeeklyTemplate, error) {
	windows, err := scope.Availability.FindMany(ctx, repository.Filter{"active": "true"}, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listar disponibilidad: %w", err)
	}
	tpl, skipped := scheduling.BuildWeeklyTemplate(windows)
	for _, id := range skipped {
		s.log.Warn().Str("window_id", id).Str("host_id", scope.Principal.ID).Msg("ventana de disponibilidad inválida, se omite")
	}
	return tpl, nil
}

// Calendar devuelve la agenda pública del anfitrión: fechas reservables, días llenos,
// franjas por día de la semana e inicios ocupados por fecha.
func (s *Service) Calendar(ctx context.Context, hostRef string) (*dto.CalendarResponse, error) {
	host, err := s.ResolveHost(ctx, hostRef)
	if err != nil {
		return nil, err
	}
	loc, err := s.hostZone(host)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := scheduling.DateKey(now, loc)
	key := s.calendarKey(host.ID, today)
	gen := s.generation(host.ID)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cal dto.CalendarResponse
			if json.Unmarshal(raw, &cal) == nil {
				s.metrics.CalendarServed(true)
				return &cal, nil
			}
		}
	}

	scope := s.gw.Bind(s.gw.Stores(), hostPrincipal(host))
	tpl, err := s.template(ctx, scope)
	if err != nil {
		return nil, err
	}
	dates := scheduling.EnumerateBookableDates(tpl, loc, now, s.cfg.HorizonDays)
	bookings, err := scope.Bookings.FindMany(ctx,
		repository.Filter{"status": entity.BookingStatusConfirmed},
		repository.ListOptions{RangeField: "date_key", From: today, To: scheduling.HorizonEnd(loc, now, s.cfg.HorizonDays)},
	)
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}
	full := scheduling.ComputeFullyBookedDates(dates, tpl.SlotCounts(), bookings, loc)
	taken := scheduling.BuildBookedIndex(bookings, loc).Taken()
	markElapsed(tpl, today, loc, now, taken, full)

	cal := &dto.CalendarResponse{
		HostID:      host.ID,
		HostName:    host.Name,
		Timezone:    loc.String(),
		Today:       today,
		Dates:       dates,
		FullyBooked: sortedKeys(full),
		SlotsByDay:  map[string][]dto.SlotResponse{},
		Taken:       taken,
	}
	for day, slots := range tpl {
		out := make([]dto.SlotResponse, 0, len(slots))
		for _, sl := range slots {
			out = append(out, dto.SlotResponse{Start: sl.StartKey(), End: sl.EndKey(), Label: sl.Label})
		}
		cal.SlotsByDay[strconv.Itoa(int(day))] = out
	}

	s.metrics.CalendarServed(false)
	if s.cache != nil {
		if raw, err := json.Marshal(cal); err == nil {
			s.store(ctx, host.ID, gen, key, raw)
		}
	}
	return cal, nil
}

// markElapsed marca como ocupadas las franjas de hoy que ya empezaron y marca hoy como
// lleno si no queda ninguna libre.
func markElapsed(tpl scheduling.WeeklyTemplate, today string, loc *time.Location, now time.Time, taken map[string][]string, full map[string]bool) {
	day, err := scheduling.ParseDateKey(today, loc)
	if err != nil {
		return
	}
	slots := tpl[day.Weekday()]
	if len(slots) == 0 {
		return
	}
	busy := map[string]bool{}
	for _, start := range taken[today] {
		busy[start] = true
	}
	free := 0
	for _, sl := range slots {
		startAt, err := scheduling.ZonedToUTC(today, sl.Start, loc)
		if err != nil || !startAt.After(now) {
			busy[sl.StartKey()] = true
		}
		if !busy[sl.StartKey()] {
			free++
		}
	}
	if len(busy) > 0 {
		taken[today] = sortedKeys(busy)
	}
	if free == 0 {
		full[today] = true
	}
}

func (s *Service) generation(hostID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[hostID]
}

// store guarda la agenda solo si nadie invalidó al anfitrión desde que empezó el cálculo.
func (s *Service) store(ctx context.Context, hostID string, gen uint64, key string, raw []byte) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gens[hostID] != gen {
		s.log.Debug().Str("host_id", hostID).Msg("agenda invalidada durante el cálculo, no se guarda")
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la agenda en caché")
	}
}

// requestedSlot es una franja pedida ya validada contra la plantilla y convertida a UTC.
type requestedSlot struct {
	dateKey string
	slot    scheduling.Slot
	startAt time.Time
	endAt   time.Time
}

// resolveSlot valida fecha y horas en la zona del anfitrión, exige que la franja esté
// ofrecida ese día y dentro del horizonte, y calcula los instantes UTC.
func (s *Service) resolveSlot(ctx context.Context, host *entity.User, scope *gateway.Scope, date, startHM, endHM string) (*requestedSlot, error) {
	loc, err := s.hostZone(host)
	if err != nil {
		return nil, err
	}
	day, err := scheduling.ParseDateKey(date, loc)
	if err != nil {
		return nil, err
	}
	start, err := scheduling.ParseTimeOfDay(startHM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTimezoneConversion, err)
	}
	end, err := scheduling.ParseTimeOfDay(endHM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTimezoneConversion, err)
	}

	now := s.now()
	if date < scheduling.DateKey(now, loc) || date > scheduling.HorizonEnd(loc, now, s.cfg.HorizonDays) {
		return nil, fmt.Errorf("%s fuera del horizonte: %w", date, domain.ErrSlotNotOffered)
	}
	tpl, err := s.template(ctx, scope)
	if err != nil {
		return nil, err
	}
	slot, ok := tpl.Offered(day.Weekday(), start, end)
	if !ok {
		return nil, fmt.Errorf("%s %s-%s: %w", date, startHM, endHM, domain.ErrSlotNotOffered)
	}
	startAt, err := scheduling.ZonedToUTC(date, slot.Start, loc)
	if err != nil {
		return nil, err
	}
	endAt, err := scheduling.ZonedToUTC(date, slot.End, loc)
	if err != nil {
		return nil, err
	}
	if !startAt.After(now) {
		return nil, fmt.Errorf("%s %s ya pasó: %w", date, startHM, domain.ErrSlotNotOffered)
	}
	return &requestedSlot{dateKey: date, slot: slot, startAt: startAt, endAt: endAt}, nil
}

// lockKey serializa todas las escrituras de un anfitrión en un mismo día.
func lockKey(hostID, dateKey string) string {
	return "booking:" + hostID + ":" + dateKey
}

// checkFree vuelve a leer, dentro de la sección crítica, las reservas activas del día y
// rechaza la franja si otra reserva (distinta de exceptID) empieza igual o se solapa.
func checkFree(ctx context.Context, bookings repository.Repository[entity.Booking], req *requestedSlot, exceptID string) (string, error) {
	existing, err := bookings.FindMany(ctx,
		repository.Filter{"date_key": req.dateKey, "status": entity.BookingStatusConfirmed},
		repository.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("revisar reservas: %w", err)
	}
	for _, b := range existing {
		if b.ID == exceptID {
			continue
		}
		if b.StartTime == req.slot.StartKey() {
			return ConflictSameStart, domain.ErrSlotAlreadyBooked
		}
		if b.StartAt.Before(req.endAt) && req.startAt.Before(b.EndAt) {
			return ConflictOverlap, domain.ErrSlotAlreadyBooked
		}
	}
	return "", nil
}

// CreateBooking reserva una franja del anfitrión. La comprobación de conflicto y la inserción
// ocurren dentro de la misma transacción bajo un bloqueo por (anfitrión, fecha); el índice
// único parcial de bookings respalda la regla si dos escrituras llegaran a cruzarse.
func (s *Service) CreateBooking(ctx context.Context, hostRef string, in dto.BookingRequest) (*dto.BookingResponse, error) {
	host, err := s.ResolveHost(ctx, hostRef)
	if err != nil {
		return nil, err
	}
	hp := hostPrincipal(host)
	req, err := s.resolveSlot(ctx, host, s.gw.Scoped(hp), in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	b := &entity.Booking{
		ID:          uuid.NewString(),
		StartAt:     req.startAt,
		EndAt:       req.endAt,
		DateKey:     req.dateKey,
		StartTime:   req.slot.StartKey(),
		EndTime:     req.slot.EndKey(),
		Status:      entity.BookingStatusConfirmed,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
		Notes:       in.Notes,
	}
	b.Stamp(host.CompanyID, host.ID)
	b.Touch(s.now())

	reason := ""
	err = s.tx.RunLocked(ctx, lockKey(host.ID, req.dateKey), func(st repository.Stores) error {
		scope := s.gw.Bind(st, hp)
		var err error
		if reason, err = checkFree(ctx, scope.Bookings, req, ""); err != nil {
			return err
		}
		if err := scope.Bookings.Create(ctx, b); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				reason = ConflictConstraint
				return domain.ErrSlotAlreadyBooked
			}
			return fmt.Errorf("crear reserva: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotAlreadyBooked) {
			s.metrics.BookingConflict(reason)
			s.log.Warn().Str("host_id", host.ID).Str("date", req.dateKey).Str("start", req.slot.StartKey()).
				Str("reason", reason).Msg("franja ya reservada")
		}
		return nil, err
	}

	s.invalidate(ctx, host)
	s.metrics.BookingCreated()
	s.log.Info().Str("booking_id", b.ID).Str("host_id", host.ID).Str("date", b.DateKey).
		Str("start", b.StartTime).Time("start_at", b.StartAt).Msg("reserva creada")
	return ToBookingResponse(b), nil
}

// Cancel marca como cancelada una reserva visible para el principal y libera su franja.
func (s *Service) Cancel(ctx context.Context, p access.Principal, bookingID string) (*dto.BookingResponse, error) {
	bookings := s.gw.Scoped(p).Bookings
	b, err := bookings.FindOne(ctx, repository.Filter{"id": bookingID})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !b.IsActive() {
		return ToBookingResponse(b), nil
	}
	b.Status = entity.BookingStatusCancelled
	b.Touch(s.now())
	n, err := bookings.Update(ctx, repository.Filter{"id": bookingID}, b)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	s.invalidateByID(ctx, b.HostID)
	s.metrics.BookingCancelled()
	s.log.Info().Str("booking_id", b.ID).Str("host_id", b.HostID).Msg("reserva cancelada")
	return ToBookingResponse(b), nil
}

// Reschedule mueve una reserva activa a otra franja ofrecida con la misma regla de unicidad
// que la creación.
func (s *Service) Reschedule(ctx context.Context, p access.Principal, bookingID string, in dto.RescheduleRequest) (*dto.BookingResponse, error) {
	b, err := s.gw.Scoped(p).Bookings.FindOne(ctx, repository.Filter{"id": bookingID})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !b.IsActive() {
		return nil, fmt.Errorf("reserva cancelada: %w", domain.ErrConflict)
	}
	host, err := s.ResolveHost(ctx, b.HostID)
	if err != nil {
		return nil, err
	}
	req, err := s.resolveSlot(ctx, host, s.gw.Scoped(hostPrincipal(host)), in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	reason := ""
	err = s.tx.RunLocked(ctx, lockKey(host.ID, req.dateKey), func(st repository.Stores) error {
		scope := s.gw.Bind(st, p)
		var err error
		if reason, err = checkFree(ctx, s.gw.Bind(st, hostPrincipal(host)).Bookings, req, b.ID); err != nil {
			return err
		}
		b.StartAt, b.EndAt = req.startAt, req.endAt
		b.DateKey = req.dateKey
		b.StartTime, b.EndTime = req.slot.StartKey(), req.slot.EndKey()
		b.Touch(s.now())
		n, err := scope.Bookings.Update(ctx, repository.Filter{"id": b.ID}, b)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				reason = ConflictConstraint
				return domain.ErrSlotAlreadyBooked
			}
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotAlreadyBooked) {
			s.metrics.BookingConflict(reason)
			s.log.Warn().Str("booking_id", b.ID).Str("date", req.dateKey).Str("start", req.slot.StartKey()).
				Str("reason", reason).Msg("reprogramación rechazada: franja ocupada")
		}
		return nil, err
	}
	s.invalidate(ctx, host)
	s.log.Info().Str("booking_id", b.ID).Str("date", b.DateKey).Str("start", b.StartTime).Msg("reserva reprogramada")
	return ToBookingResponse(b), nil
}

// ValidateWindow normaliza y valida una ventana antes de guardarla: formato, día de la semana
// y que el anfitrión exista en la misma empresa.
func (s *Service) ValidateWindow(ctx context.Context, w *entity.AvailabilityWindow) error {
	if w.SlotDuration <= 0 {
		w.SlotDuration = scheduling.DefaultSlotDuration
	}
	if w.Buffer < 0 {
		w.Buffer = 0
	}
	if err := scheduling.ValidateWindow(*w); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	host, err := s.gw.Stores().Users.FindOne(ctx, repository.Filter{"id": w.HostID, "company_id": w.CompanyID})
	if err != nil {
		return err
	}
	if host == nil {
		return fmt.Errorf("anfitrión %q: %w", w.HostID, domain.ErrInvalidInput)
	}
	return nil
}

// InvalidateHost descarta la agenda en caché de un anfitrión (tras cambiar su disponibilidad).
func (s *Service) InvalidateHost(ctx context.Context, hostID string) {
	s.invalidateByID(ctx, hostID)
}

// WindowChanged invalida la agenda de los anfitriones tocados por un cambio de disponibilidad:
// el anterior y el nuevo cuando la ventana pasa de un anfitrión a otro.
func (s *Service) WindowChanged(ctx context.Context, prev, next *entity.AvailabilityWindow) {
	seen := map[string]bool{}
	for _, w := range []*entity.AvailabilityWindow{prev, next} {
		if w == nil || w.HostID == "" || seen[w.HostID] {
			continue
		}
		seen[w.HostID] = true
		s.invalidateByID(ctx, w.HostID)
	}
}

func (s *Service) invalidateByID(ctx context.Context, hostID string) {
	if s.cache == nil {
		return
	}
	host, err := s.gw.Stores().Users.FindOne(ctx, repository.Filter{"id": hostID})
	if err != nil || host == nil {
		return
	}
	s.invalidate(ctx, host)
}

func (s *Service) invalidate(ctx context.Context, host *entity.User) {
	if s.cache == nil {
		return
	}
	s.genMu.Lock()
	s.gens[host.ID]++
	s.genMu.Unlock()
	loc, err := s.hostZone(host)
	if err != nil {
		return
	}
	key := s.calendarKey(host.ID, scheduling.DateKey(s.now(), loc))
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("no se pudo invalidar la agenda en caché")
	}
}

// ToBookingResponse convierte la entidad a su DTO.
func ToBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:          b.ID,
		HostID:      b.HostID,
		Status:      b.Status,
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		Date:        b.DateKey,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
