package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"

	"github.com/netresearch/scim-ldap-bridge/internal/retry"
)

// Config describes how to reach the backing directory and how many
// connections to keep pooled against it.
type Config struct {
	Host           string
	Port           int
	BindDN         string
	BindPassword   string
	MaxConnections int
	BaseDN         string
	DialTimeout    time.Duration
	UseTLS         bool

	// TLSSkipVerify disables certificate verification on LDAPS dials. Only
	// for development against self-signed directory certificates.
	TLSSkipVerify bool

	// Retry governs how many times, and with what backoff, a failed dial is
	// retried before being surfaced to the caller.
	Retry retry.Config
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) withDefaults() Config {
	if c.MaxConnections <= 0 {
		c.MaxConnections = 10
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = retry.LDAPConfig()
	}
	return c
}

// poolState tracks the pool lifecycle: open from construction until Close,
// then closed for good.
type poolState int32

const (
	stateOpen poolState = iota
	stateClosed
)

// pooledConn wraps one *ldap.Conn with its health bookkeeping: a connection
// is available, in use, or defunct.
type pooledConn struct {
	conn    *ldap.Conn
	mu      sync.Mutex
	healthy bool
}

// Pool is a single shared pool of LDAP connections bound with the
// configured credentials. It is created lazily on first use and closed
// exactly once.
type Pool struct {
	cfg       Config
	available chan *pooledConn
	mu        sync.Mutex
	total     int32
	state     int32

	acquired int64
	failed   int64
}

// dial opens one authenticated connection to the configured directory.
func dial(cfg Config) (*ldap.Conn, error) {
	var conn *ldap.Conn
	var err error

	addr := cfg.addr()
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	if cfg.UseTLS {
		conn, err = ldap.DialURL("ldaps://"+addr, ldap.DialWithDialer(dialer), ldap.DialWithTLSConfig(&tls.Config{ //nolint:gosec // skip-verify is an explicit dev-only option
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.TLSSkipVerify,
		}))
	} else {
		conn, err = ldap.DialURL("ldap://"+addr, ldap.DialWithDialer(dialer))
	}
	if err != nil {
		return nil, fmt.Errorf("directory: dial %s: %w", addr, err)
	}

	if err := conn.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
		conn.Close()
		return nil, fmt.Errorf("directory: bind as %s: %w", cfg.BindDN, err)
	}

	return conn, nil
}

// newPool constructs and opens one Pool, retrying the initial dial per
// cfg.Retry. A failed attempt, after retries are exhausted, leaves the slot
// open for the next caller (the Manager) to try again.
func newPool(ctx context.Context, cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()

	p := &Pool{
		cfg:       cfg,
		available: make(chan *pooledConn, cfg.MaxConnections),
	}

	conn, err := retry.DoWithResultConfig(ctx, cfg.Retry, func() (*ldap.Conn, error) {
		return dial(cfg)
	})
	if err != nil {
		return nil, err
	}
	p.available <- &pooledConn{conn: conn, healthy: true}
	atomic.AddInt32(&p.total, 1)

	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Int("max_connections", cfg.MaxConnections).
		Msg("directory connection pool opened")

	return p, nil
}

func (p *Pool) isOpen() bool {
	return p != nil && atomic.LoadInt32(&p.state) == int32(stateOpen)
}

// borrow returns a connection, creating one if the pool has capacity and no
// idle connection is available.
func (p *Pool) borrow(ctx context.Context) (*pooledConn, error) {
	if !p.isOpen() {
		return nil, ErrPoolClosed
	}

	select {
	case c := <-p.available:
		c.mu.Lock()
		ok := c.healthy
		c.mu.Unlock()
		if ok {
			return c, nil
		}
		atomic.AddInt32(&p.total, -1)
	default:
	}

	p.mu.Lock()
	room := atomic.LoadInt32(&p.total) < int32(p.cfg.MaxConnections)
	if room {
		atomic.AddInt32(&p.total, 1)
	}
	p.mu.Unlock()

	if room {
		conn, err := retry.DoWithResultConfig(ctx, p.cfg.Retry, func() (*ldap.Conn, error) {
			return dial(p.cfg)
		})
		if err != nil {
			atomic.AddInt32(&p.total, -1)
			atomic.AddInt64(&p.failed, 1)
			return nil, err
		}
		return &pooledConn{conn: conn, healthy: true}, nil
	}

	select {
	case c := <-p.available:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release returns a connection to the idle set. defunct==true discards it
// instead, so the pool replenishes with a fresh dial on a later borrow.
func (p *Pool) release(c *pooledConn, defunct bool) {
	if c == nil {
		return
	}
	if defunct || !p.isOpen() {
		c.mu.Lock()
		c.healthy = false
		_ = c.conn.Close()
		c.mu.Unlock()
		atomic.AddInt32(&p.total, -1)
		return
	}

	select {
	case p.available <- c:
	default:
		// pool is momentarily overfull (race between borrow/release); close the extra.
		c.mu.Lock()
		c.healthy = false
		_ = c.conn.Close()
		c.mu.Unlock()
		atomic.AddInt32(&p.total, -1)
	}
}

// withConnection borrows a connection, runs fn, and releases it exactly
// once: healthy if fn's error does not classify as defunct, discarded
// otherwise. Every borrow goes through here, so no exit path can leak a
// connection or release one twice.
func (p *Pool) withConnection(ctx context.Context, fn func(*ldap.Conn) error) error {
	c, err := p.borrow(ctx)
	if err != nil {
		atomic.AddInt64(&p.failed, 1)
		return err
	}
	atomic.AddInt64(&p.acquired, 1)

	opErr := fn(c.conn)
	p.release(c, isDefunct(opErr))

	return opErr
}

// Close shuts the pool down, closing every idle connection. The available
// channel is drained rather than closed: a connection still borrowed at this
// point is closed by release when its request finishes, so no late release
// can panic on a closed channel and no late borrow can receive a nil.
func (p *Pool) Close() error {
	if !atomic.CompareAndSwapInt32(&p.state, int32(stateOpen), int32(stateClosed)) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		select {
		case c := <-p.available:
			c.mu.Lock()
			_ = c.conn.Close()
			c.mu.Unlock()
			atomic.AddInt32(&p.total, -1)
		default:
			log.Info().Msg("directory connection pool closed")
			return nil
		}
	}
}

// Stats reports point-in-time pool usage, useful for health endpoints.
type Stats struct {
	Total    int32
	Idle     int
	Acquired int64
	Failed   int64
}

// Stats returns current pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Total:    atomic.LoadInt32(&p.total),
		Idle:     len(p.available),
		Acquired: atomic.LoadInt64(&p.acquired),
		Failed:   atomic.LoadInt64(&p.failed),
	}
}

// ErrPoolClosed is returned by an operation attempted against a closed pool.
var ErrPoolClosed = errors.New("directory: connection pool is closed")

// Manager lazily constructs the single shared Pool for a directory and
// guarantees at most one live pool even under concurrent first use.
type Manager struct {
	cfg Config

	mu   sync.Mutex
	pool *Pool
}

// NewManager returns a Manager bound to cfg. No connection is made until
// the first call to GetPool.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// GetPool returns the shared pool, constructing it on first use. Two
// concurrent callers racing to construct the pool converge on exactly one
// winner; the loser closes its extra pool and GetPool returns the winner's.
func (m *Manager) GetPool(ctx context.Context) (*Pool, error) {
	m.mu.Lock()
	if m.pool.isOpen() {
		defer m.mu.Unlock()
		return m.pool, nil
	}
	m.mu.Unlock()

	candidate, err := newPool(ctx, m.cfg)
	if err != nil {
		return nil, err
	}
	atomic.StoreInt32(&candidate.state, int32(stateOpen))

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool.isOpen() {
		// Someone else published a pool first while we were dialing.
		candidate.Close()
		return m.pool, nil
	}

	m.pool = candidate
	return m.pool, nil
}

// Close tears down the pool if one was ever created. Safe to call even if
// GetPool was never invoked.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool == nil {
		return nil
	}
	return m.pool.Close()
}
