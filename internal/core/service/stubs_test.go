package service

import (
	"context"
	"sync"
	"time"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory account repository, generic over the three account kinds.
// ---------------------------------------------------------------------------

type stubAccountRepo[T any] struct {
	mu        sync.Mutex
	rows      []*T
	notFound  error
	createErr error
	listErr   error
	creates   int
	// onCreate runs inside Create before createErr is returned.
	onCreate func()
}

func newStubAccountRepo[T any](notFound error) *stubAccountRepo[T] {
	return &stubAccountRepo[T]{notFound: notFound}
}

func accountOf[T any](v *T) domain.Account {
	return any(v).(domain.Account)
}

func (r *stubAccountRepo[T]) find(email string) (*T, bool) {
	for _, row := range r.rows {
		if accountOf(row).Credential().Email == email {
			return row, true
		}
	}
	return nil, false
}

func (r *stubAccountRepo[T]) Create(_ context.Context, acct *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.find(accountOf(acct).Credential().Email); ok {
		return domain.ErrDuplicateAccount
	}
	clone := *acct
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubAccountRepo[T]) FindByEmail(_ context.Context, email string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.find(email)
	if !ok {
		return nil, r.notFound
	}
	clone := *row
	return &clone, nil
}

func (r *stubAccountRepo[T]) FindCredential(ctx context.Context, email string) (*domain.Credential, error) {
	acct, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c := accountOf(acct).Credential()
	return &c, nil
}

func (r *stubAccountRepo[T]) Update(_ context.Context, email string, p domain.ProfileUpdate) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.find(email)
	if !ok {
		return nil, r.notFound
	}
	accountOf(row).ApplyProfile(p)
	clone := *row
	return &clone, nil
}

func (r *stubAccountRepo[T]) List(_ context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

// stubStoreLookup resolves store names against a store-owner stub repo.
type stubStoreLookup struct {
	owners *stubAccountRepo[domain.StoreOwner]
}

func (l stubStoreLookup) FindByStoreName(_ context.Context, name string) (*domain.StoreOwner, error) {
	for _, o := range l.owners.rows {
		if o.StoreName == name {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

// ---------------------------------------------------------------------------
// In-memory rating repository.
// ---------------------------------------------------------------------------

type ratingKey struct {
	storeID uint
	email   string
}

type stubRatingRepo struct {
	mu        sync.Mutex
	stores    map[uint]*domain.StoreOwner
	ratings   map[ratingKey]int
	order     []ratingKey
	submitErr []error // consumed one per Submit call before the real logic
	calls     int
	summaries []domain.StoreSummary
}

func newStubRatingRepo(stores ...*domain.StoreOwner) *stubRatingRepo {
	r := &stubRatingRepo{
		stores:  make(map[uint]*domain.StoreOwner),
		ratings: make(map[ratingKey]int),
	}
	for _, s := range stores {
		r.stores[s.ID] = s
	}
	return r
}

func (r *stubRatingRepo) Submit(_ context.Context, storeID uint, email string, value int) (*domain.RatingChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.submitErr) > 0 {
		err := r.submitErr[0]
		r.submitErr = r.submitErr[1:]
		if err != nil {
			return nil, err
		}
	}

	store, ok := r.stores[storeID]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	key := ratingKey{storeID, email}
	change := &domain.RatingChange{StoreID: storeID, StoreName: store.StoreName, UserEmail: email, Rating: value}
	if old, exists := r.ratings[key]; exists {
		store.RatingSum += int64(value - old)
		change.PreviousRating = old
		change.Outcome = domain.RatingUpdated
	} else {
		store.RatingSum += int64(value)
		store.RatingCount++
		r.order = append(r.order, key)
		change.Outcome = domain.RatingCreated
	}
	r.ratings[key] = value
	return change, nil
}

func (r *stubRatingRepo) ListStoreSummaries(_ context.Context, email string) ([]domain.StoreSummary, error) {
	if r.summaries != nil {
		out := make([]domain.StoreSummary, len(r.summaries))
		copy(out, r.summaries)
		return out, nil
	}
	var out []domain.StoreSummary
	for id := uint(1); id <= uint(len(r.stores)); id++ {
		s, ok := r.stores[id]
		if !ok {
			continue
		}
		sum := domain.StoreSummary{ID: s.ID, StoreName: s.StoreName, Address: s.Address, RatingSum: s.RatingSum, RatingCount: s.RatingCount}
		if v, ok := r.ratings[ratingKey{s.ID, email}]; ok {
			sum.UserRating = &v
		}
		out = append(out, sum)
	}
	return out, nil
}

func (r *stubRatingRepo) ListReviews(_ context.Context, storeID uint) ([]domain.Review, error) {
	var out []domain.Review
	for _, k := range r.order {
		if k.storeID == storeID {
			out = append(out, domain.Review{UserEmail: k.email, Rating: r.ratings[k]})
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Idempotency store and event publisher.
// ---------------------------------------------------------------------------

type stubIdempotency struct {
	stored    map[string]domain.RatingOutcome
	lookupErr   error
	rememberErr error
	remembers   int
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{stored: make(map[string]domain.RatingOutcome)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (domain.RatingOutcome, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	o, ok := s.stored[scope+"|"+key]
	return o, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key string, outcome domain.RatingOutcome, _ time.Duration) error {
	s.remembers++
	if s.rememberErr != nil {
		return s.rememberErr
	}
	s.stored[scope+"|"+key] = outcome
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.RatingEvent
}

func (p *recordingPublisher) Publish(e domain.RatingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

var (
	_ ports.AccountRepository[domain.User] = (*stubAccountRepo[domain.User])(nil)
	_ ports.RatingRepository               = (*stubRatingRepo)(nil)
	_ ports.RatingEventPublisher           = (*recordingPublisher)(nil)
	_ ports.IdempotencyStore               = (*stubIdempotency)(nil)
	_ ports.StoreLookup                    = stubStoreLookup{}
)
