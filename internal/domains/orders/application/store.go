package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	"github.com/Apurer/dentallab-tracker/internal/platform/id"
)

// DefaultSlotKey names the slot holding the serialized order collection.
const DefaultSlotKey = "dentallab_orders"

const dateLayout = "2006-01-02"

// Store owns the live order collection and mirrors it into a storage slot
// after every mutation. Mutations are built on a copy and only committed to
// memory once the slot write succeeded.
type Store struct {
	mu     sync.Mutex
	slot   ports.SlotStore
	key    string
	ids    id.Generator
	now    func() time.Time
	logger *slog.Logger

	orders []domain.Order
	loaded bool
}

// Option customises a Store.
type Option func(*Store)

// WithSlotKey overrides the slot the collection is persisted under.
func WithSlotKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used to report recovered storage problems.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore wires a store over the given slot. Nothing is read until the
// first operation or an explicit Load.
func NewStore(slot ports.SlotStore, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultSlotKey,
		ids:    id.New(),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load rehydrates the collection from the slot. A missing or unparsable
// blob yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.orders = orders
	s.loaded = true
	return cloneOrders(orders), nil
}

// Save writes the current collection to the slot.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	return s.commit(ctx, s.orders)
}

// Create stores a new order at the front of the collection.
func (s *Store) Create(ctx context.Context, fields domain.Fields) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Order{}, err
	}
	if strings.TrimSpace(fields.ReceivedDate) == "" {
		fields.ReceivedDate = s.now().UTC().Format(dateLayout)
	}
	order, err := domain.NewOrder(s.ids.Next(), fields)
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	next := make([]domain.Order, 0, len(s.orders)+1)
	next = append(next, order)
	next = append(next, s.orders...)
	if err := s.commit(ctx, next); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Get returns a single order.
func (s *Store) Get(ctx context.Context, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Order{}, err
	}
	idx := s.indexOf(orderID)
	if idx < 0 {
		return domain.Order{}, notFound(orderID)
	}
	return s.orders[idx], nil
}

// Update replaces every editable field of an order, keeping its id.
func (s *Store) Update(ctx context.Context, orderID string, fields domain.Fields) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Order{}, err
	}
	idx := s.indexOf(orderID)
	if idx < 0 {
		return domain.Order{}, notFound(orderID)
	}
	next := cloneOrders(s.orders)
	if err := next[idx].Replace(fields); err != nil {
		return domain.Order{}, mapError(err)
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Order{}, err
	}
	return next[idx], nil
}

// SetStatus moves an order to another lifecycle stage.
func (s *Store) SetStatus(ctx context.Context, orderID string, status domain.Status) (domain.Order, error) {
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Order{}, err
	}
	idx := s.indexOf(orderID)
	if idx < 0 {
		return domain.Order{}, notFound(orderID)
	}
	next := cloneOrders(s.orders)
	next[idx].Status = parsed
	if err := s.commit(ctx, next); err != nil {
		return domain.Order{}, err
	}
	return next[idx], nil
}

// Delete removes an order. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.indexOf(orderID)
	if idx < 0 {
		return nil
	}
	next := make([]domain.Order, 0, len(s.orders)-1)
	next = append(next, s.orders[:idx]...)
	next = append(next, s.orders[idx+1:]...)
	return s.commit(ctx, next)
}

// Clear removes every order.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	return s.commit(ctx, []domain.Order{})
}

// ReplaceAll installs orders as the whole collection. Orders without an id
// get a fresh one; a repeated id keeps its first occurrence.
func (s *Store) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	return s.commit(ctx, s.normalizeBatch(orders))
}

// Import prepends orders to the collection and reports how many were
// installed. An imported order replaces a stored order with the same id.
func (s *Store) Import(ctx context.Context, orders []domain.Order) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	batch := s.normalizeBatch(orders)
	incoming := make(map[string]struct{}, len(batch))
	for _, o := range batch {
		incoming[o.ID] = struct{}{}
	}
	next := make([]domain.Order, 0, len(batch)+len(s.orders))
	next = append(next, batch...)
	for _, o := range s.orders {
		if _, replaced := incoming[o.ID]; !replaced {
			next = append(next, o)
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// LoadSample replaces the collection with demo orders.
func (s *Store) LoadSample(ctx context.Context) error {
	return s.ReplaceAll(ctx, SampleOrders())
}

// List returns a snapshot of the collection, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneOrders(s.orders), nil
}

// Query returns the filtered, sorted view described by q.
func (s *Store) Query(ctx context.Context, q domain.Query) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return domain.ApplyQuery(s.orders, q), nil
}

// Summary counts orders per status.
func (s *Store) Summary(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(s.orders), nil
}

// Clinics lists distinct clinic names for filtering.
func (s *Store) Clinics(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return domain.DistinctClinics(s.orders), nil
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	orders, err := s.read(ctx)
	if err != nil {
		return err
	}
	s.orders = orders
	s.loaded = true
	return nil
}

func (s *Store) read(ctx context.Context) ([]domain.Order, error) {
	if s.slot == nil {
		return nil, errors.New("order slot store not configured")
	}
	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ports.ErrSlotNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	orders, err := decodeBlob(raw)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order slot unreadable, starting with an empty collection",
			slog.String("slot", s.key), slog.String("error", err.Error()))
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (s *Store) commit(ctx context.Context, next []domain.Order) error {
	if s.slot == nil {
		return errors.New("order slot store not configured")
	}
	raw, err := encodeBlob(next)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.slot.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	s.orders = next
	return nil
}

func (s *Store) indexOf(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

func (s *Store) normalizeBatch(orders []domain.Order) []domain.Order {
	seen := make(map[string]struct{}, len(orders))
	batch := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if strings.TrimSpace(o.ID) == "" {
			o.ID = s.ids.Next()
		}
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		batch = append(batch, o)
	}
	return batch
}

func notFound(orderID string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, orderID)
}

func cloneOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	return out
}

var _ ports.Service = (*Store)(nil)
