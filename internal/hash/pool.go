// Package hash provides the bcrypt password hasher. Hashing is CPU-bound and
// deliberately slow, so the work runs on a fixed pool of workers sized
// independently from the request-handling goroutines instead of inline.
package hash

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edutectno/identity-service/internal/api/metrics"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

// BcryptPool hashes and verifies passwords on a bounded worker pool.
type BcryptPool struct {
	cost int
	jobs chan func()
	log  zerolog.Logger
}

// NewBcryptPool creates a pool with numWorkers workers and the given bcrypt
// cost. Out-of-range values fall back to defaults.
func NewBcryptPool(numWorkers, cost int, log zerolog.Logger) *BcryptPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	p := &BcryptPool{
		cost: cost,
		jobs: make(chan func(), queueBuffer),
		log:  log,
	}
	p.start(numWorkers)
	return p
}

func (p *BcryptPool) start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.runWorker()
	}
}

// Close stops all workers once queued jobs have drained.
func (p *BcryptPool) Close() {
	close(p.jobs)
}

func (p *BcryptPool) runWorker() {
	for job := range p.jobs {
		job()
	}
}

type hashResult struct {
	digest string
	err    error
}

// Hash produces a salted bcrypt digest of plaintext. Two calls with the same
// plaintext yield different digests.
func (p *BcryptPool) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reply := make(chan hashResult, 1)
	job := func() {
		start := time.Now()
		digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
		metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
		reply <- hashResult{digest: string(digest), err: err}
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-reply:
		return r.digest, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch, never an error.
func (p *BcryptPool) Verify(ctx context.Context, plaintext, digest string) bool {
	if ctx.Err() != nil {
		return false
	}

	reply := make(chan hashResult, 1)
	job := func() {
		reply <- hashResult{err: bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))}
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return false
	}

	select {
	case r := <-reply:
		return r.err == nil
	case <-ctx.Done():
		return false
	}
}
