package services

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/migscope/pkg/configuration"
	"github.com/iota-uz/migscope/pkg/logging"
	"github.com/iota-uz/migscope/pkg/serrors"
)

var (
	ErrUnknownEnvironment     = serrors.NewError("ENV_UNKNOWN", "unknown dataset environment", "declare it in DATASET_ENVIRONMENTS")
	ErrEnvironmentUnreachable = serrors.NewError("ENV_UNREACHABLE", "dataset environment is unreachable", "check the database and its credentials")
)

// EnvironmentService switches the active dataset environment. Every
// environment is its own database; a switch opens and pings the target pool
// before swapping, so failure leaves the current environment untouched.
type EnvironmentService struct {
	conf *configuration.Configuration
	log  *logrus.Logger

	mu      sync.RWMutex
	current string
	pool    *pgxpool.Pool
}

func NewEnvironmentService(conf *configuration.Configuration, pool *pgxpool.Pool) *EnvironmentService {
	log := conf.Logger()
	if log == nil {
		log = logging.ConsoleLogger(logrus.ErrorLevel)
	}
	return &EnvironmentService{
		conf:    conf,
		log:     log,
		current: conf.EnvironmentNames()[0],
		pool:    pool,
	}
}

// Current returns the active environment name.
func (s *EnvironmentService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Pool returns the active environment's connection pool.
func (s *EnvironmentService) Pool() *pgxpool.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool
}

// Names lists the configured environments; the first one is the default.
func (s *EnvironmentService) Names() []string {
	return s.conf.EnvironmentNames()
}

// Switch activates the named environment. The switch is atomic: on any
// failure the active environment and pool remain unchanged.
func (s *EnvironmentService) Switch(ctx context.Context, name string) error {
	if !s.configured(name) {
		return ErrUnknownEnvironment.WithMessage("unknown dataset environment %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.current {
		return nil
	}

	pool, err := pgxpool.New(ctx, s.conf.Database.ConnectionStringFor(name))
	if err != nil {
		return ErrEnvironmentUnreachable.WithMessage("cannot open pool for %q: %v", name, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ErrEnvironmentUnreachable.WithMessage("cannot reach %q: %v", name, err)
	}

	old := s.pool
	s.pool = pool
	s.current = name
	if old != nil {
		old.Close()
	}

	s.log.WithField("environment", name).Info("switched dataset environment")
	return nil
}

func (s *EnvironmentService) configured(name string) bool {
	for _, candidate := range s.conf.EnvironmentNames() {
		if candidate == name {
			return true
		}
	}
	return false
}
