package store

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoOptions fixes the pool and timeout knobs at startup.
type MongoOptions struct {
	URI           string
	Database      string
	MaxPool       int
	SelectTimeout time.Duration
	SocketTimeout time.Duration
}

// Mongo is the storage-client handle: built once at process start, closed on
// shutdown, and passed into handlers rather than captured as a global.
// Readiness starts false and is kept in sync with the deployment by Monitor,
// so the HTTP layer can gate requests during cold start and outages alike.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	ready  atomic.Bool

	ping         func(ctx context.Context) error
	pingInterval time.Duration
	pingTimeout  time.Duration
}

// NewMongo builds the client. The driver connects lazily; no I/O happens here
// beyond URI validation, so construction succeeds even while the store is down.
func NewMongo(opts MongoOptions) (*Mongo, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(uint64(opts.MaxPool)).
		SetServerSelectionTimeout(opts.SelectTimeout).
		SetSocketTimeout(opts.SocketTimeout)
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	m := &Mongo{
		client:       client,
		db:           client.Database(opts.Database),
		pingInterval: 2 * time.Second,
		pingTimeout:  3 * time.Second,
	}
	m.ping = func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	return m, nil
}

// Monitor pings the deployment for the life of ctx, keeping the readiness
// flag in sync with what the store actually answers: on after a successful
// ping, off again once pings start failing, so the gate returns 503 during
// outages instead of letting requests through to storage errors. onReady runs
// on every transition to ready (index bootstrap is idempotent, so a reconnect
// re-running it is harmless). Meant to run in its own goroutine.
func (m *Mongo) Monitor(ctx context.Context, onReady func(ctx context.Context)) {
	for {
		pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
		err := m.ping(pingCtx)
		cancel()

		switch {
		case err == nil && !m.ready.Load():
			m.ready.Store(true)
			log.Println("mongo connected")
			if onReady != nil {
				onReady(ctx)
			}
		case err != nil && m.ready.Load():
			m.ready.Store(false)
			log.Printf("mongo connection lost: %v", err)
		case err != nil:
			log.Printf("mongo not ready: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(m.pingInterval):
		}
	}
}

// Ready reports whether the storage connection is currently usable.
func (m *Mongo) Ready() bool {
	return m != nil && m.ready.Load()
}

// Database returns the handle handlers operate on.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Close disconnects the client on shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	m.ready.Store(false)
	return m.client.Disconnect(ctx)
}
