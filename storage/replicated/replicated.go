// Package replicated fans a single logical snapshot out to several
// physical backends behind the plain storage.Backend contract.
//
// Write policy: concurrent fan-out, success when at least one replica
// succeeds. Waiting-for-all keeps the failure accounting complete even
// though the caller only sees a binary outcome.
//
// Load policy: replicas are tried sequentially in list order (list order
// is priority order) and the first success wins. This is a fallback
// chain, not a consistency protocol: if the first reachable replica
// missed the last partial write, the read is stale. The single-writer,
// infrequent-write access pattern makes that an accepted limitation.
package replicated

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

// Observer receives per-replica outcomes. Partial write failures never
// reach the caller, so this is the only place operations tooling can see
// them.
type Observer interface {
	ObserveWrite(replica string, err error)
	ObserveLoad(replica string, err error)
}

// Replica pairs a backend with the name used for logs and monitoring.
type Replica struct {
	Name    string
	Backend storage.Backend
}

// Backend is the replicated storage backend.
type Backend struct {
	replicas []Replica
	observer Observer
	logger   *zap.Logger
}

var _ storage.Backend = (*Backend)(nil)

// New builds a replicated backend over the given replicas, primary
// first. The observer may be nil.
func New(logger *zap.Logger, observer Observer, replicas ...Replica) (*Backend, error) {
	if len(replicas) == 0 {
		return nil, domain.NewError(domain.ErrCodeValidation, "replicated backend needs at least one replica")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		replicas: replicas,
		observer: observer,
		logger:   logger,
	}, nil
}

// Write sends content to every replica concurrently and waits for all of
// them. It succeeds when at least one replica stored the content; only
// when every replica fails does the caller see an error.
func (b *Backend) Write(ctx context.Context, content []byte) error {
	errs := make([]error, len(b.replicas))

	var wg sync.WaitGroup
	for i, replica := range b.replicas {
		wg.Add(1)
		go func(i int, replica Replica) {
			defer wg.Done()
			errs[i] = replica.Backend.Write(ctx, content)
		}(i, replica)
	}
	wg.Wait()

	succeeded := 0
	var merr *multierror.Error
	for i, err := range errs {
		replica := b.replicas[i]
		if b.observer != nil {
			b.observer.ObserveWrite(replica.Name, err)
		}
		if err != nil {
			b.logger.Warn("replica write failed",
				zap.String("replica", replica.Name),
				zap.Error(err))
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", replica.Name, err))
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return domain.WrapError(domain.ErrCodeUnreachable, "all replicas failed to write", merr.ErrorOrNil())
	}
	if merr.ErrorOrNil() != nil {
		// The snapshot is durable somewhere, but not everywhere.
		b.logger.Warn("partial replication",
			zap.Int("succeeded", succeeded),
			zap.Int("failed", merr.Len()),
			zap.Int("replicas", len(b.replicas)))
	}
	return nil
}

// Load tries replicas in priority order and returns the first successful
// result, leaving the remaining replicas untouched.
func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	var merr *multierror.Error
	allEmpty := true
	for _, replica := range b.replicas {
		content, err := replica.Backend.Load(ctx)
		if b.observer != nil {
			b.observer.ObserveLoad(replica.Name, err)
		}
		if err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				// An empty replica is a normal first-boot state, not an
				// outage.
				b.logger.Debug("replica holds no snapshot, falling back",
					zap.String("replica", replica.Name))
			} else {
				allEmpty = false
				b.logger.Warn("replica load failed, falling back",
					zap.String("replica", replica.Name),
					zap.Error(err))
			}
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", replica.Name, err))
			continue
		}
		return content, nil
	}
	if allEmpty {
		return nil, domain.WrapError(domain.ErrCodeNotFound, "no replica holds a snapshot", merr.ErrorOrNil())
	}
	return nil, domain.WrapError(domain.ErrCodeUnreachable, "all replicas failed to load", merr.ErrorOrNil())
}
