package seed

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/storage"
)

// DefaultDelay is how long the simulated startup fetch takes.
const DefaultDelay = 500 * time.Millisecond

// Status reports the state of the startup load.
type Status struct {
	// Loading is true until the seed has been written to the store.
	Loading bool

	// Connected is a cosmetic connectivity indicator; it has no effect on data.
	Connected bool

	// Err holds the load error, if any.
	Err error
}

// Loader populates a store once, after a fixed delay.
type Loader struct {
	store  storage.Store
	people []models.Person
	delay  time.Duration
	coin   func() float64

	once sync.Once
	done chan struct{}

	mu     sync.RWMutex
	status Status
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) LoaderOption {
	return func(l *Loader) { l.delay = d }
}

// WithCoin overrides the random source behind the connectivity indicator.
func WithCoin(coin func() float64) LoaderOption {
	return func(l *Loader) { l.coin = coin }
}

// NewLoader creates a Loader that will write people into store.
func NewLoader(store storage.Store, people []models.Person, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:  store,
		people: people,
		delay:  DefaultDelay,
		coin:   rand.Float64,
		done:   make(chan struct{}),
		status: Status{Loading: true},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start schedules the load. Only the first call has an effect; the load cannot be cancelled.
func (l *Loader) Start() {
	l.once.Do(func() {
		time.AfterFunc(l.delay, l.run)
	})
}

// Done is closed once the load has finished, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Status returns the current load status.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Loader) run() {
	err := l.store.Load(context.Background(), l.people)
	if err != nil {
		slog.Error("Seed load failed", "error", err)
	} else {
		slog.Info("Seed loaded", "people", len(l.people))
	}

	l.mu.Lock()
	l.status = Status{
		Loading:   false,
		Connected: l.coin() > 0.3,
		Err:       err,
	}
	l.mu.Unlock()

	close(l.done)
}
