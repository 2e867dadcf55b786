// internal/app/store/gateway/gateway.go

// Package gateway owns the single MongoDB client the application uses.
// Every repository operation runs as a unit of work through Gateway.Run,
// which guarantees a valid open handle and serializes access so that the
// read-then-write invariant checks in the user store never interleave.
package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNilWork is returned when Run or RunTxn is called with a nil work function.
var ErrNilWork = errors.New("gateway: nil unit of work")

// Work is a unit of work executed against the open store handle.
type Work func(ctx context.Context, db *mongo.Database) error

// Gateway is the single choke point between the repositories and MongoDB.
// It holds no knowledge of entity shapes.
type Gateway struct {
	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// PoolConfig mirrors the connection-pool knobs exposed to configuration.
type PoolConfig struct {
	MaxPoolSize uint64
	MinPoolSize uint64
}

// Connect establishes the MongoDB connection and returns the Gateway that
// owns it. The caller is responsible for Close on shutdown.
func Connect(ctx context.Context, uri, database string, pool PoolConfig, logger *zap.Logger) (*Gateway, error) {
	poolCfg := wafflemongo.DefaultPoolConfig()
	if pool.MaxPoolSize > 0 {
		poolCfg.MaxPoolSize = pool.MaxPoolSize
	}
	if pool.MinPoolSize > 0 {
		poolCfg.MinPoolSize = pool.MinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, uri, database, poolCfg)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to MongoDB",
		zap.String("database", database),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	return &Gateway{
		client: client,
		db:     client.Database(database),
		log:    logger,
	}, nil
}

// New wraps an already-connected database handle. Used by tests and by any
// host that manages the client lifecycle itself.
func New(db *mongo.Database, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		client: db.Client(),
		db:     db,
		log:    logger,
	}
}

// Run executes one unit of work against the open store. Units of work are
// serialized: the invariant checks in the user store are read-then-write
// sequences with no storage-level isolation, so overlapping mutations of the
// same collection must not interleave. Errors from the work function
// propagate unchanged; there are no retries and no queueing.
func (g *Gateway) Run(ctx context.Context, work Work) error {
	if work == nil {
		return ErrNilWork
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return work(ctx, g.db)
}

// RunTxn executes one unit of work inside a MongoDB transaction when the
// deployment supports one (replica set or mongos). On standalone servers it
// falls back to the serialized non-transactional path, which still holds the
// gateway lock for the whole unit of work.
func (g *Gateway) RunTxn(ctx context.Context, work Work) error {
	if work == nil {
		return ErrNilWork
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := g.client.StartSession()
	if err != nil {
		g.log.Warn("failed to start session, running without transaction", zap.Error(err))
		return work(ctx, g.db)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, work(sc, g.db)
	})
	if err != nil {
		if isTxnNotSupported(err) {
			g.log.Warn("transactions not supported, running without transaction", zap.Error(err))
			return work(ctx, g.db)
		}
		return err
	}
	return nil
}

// Ping verifies the store handle is alive. Used by health checks.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

// isTxnNotSupported detects deployments that cannot run multi-document
// transactions (standalone MongoDB, DocumentDB with transactions disabled).
//
// Known error codes:
//   - 20: "Transaction numbers are only allowed on a replica set member or mongos"
//   - 51: IllegalOperation
//   - 263: "Cannot run 'aggregate' in a multi-document transaction"
func isTxnNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	keywords := []string{
		"transaction",
		"replica set",
		"session",
		"not supported",
		"illegal operation",
	}
	matchCount := 0
	for _, kw := range keywords {
		if strings.Contains(errStr, kw) {
			matchCount++
		}
	}
	// Require at least 2 keyword matches to avoid false positives
	return matchCount >= 2
}
