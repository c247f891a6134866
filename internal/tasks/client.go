// Package tasks runs scrape jobs through a persistent queue, so a flaky
// source site or an interrupted run never loses requested work.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Queue wraps backlite with a dedicated SQLite database for the scrape queue.
type Queue struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	started bool
}

// NewQueue creates the scrape queue with its own SQLite database, stored
// alongside the page cache with a "-tasks" suffix.
func NewQueue(cacheDBPath string, cfg Config) (*Queue, error) {
	dir := filepath.Dir(cacheDBPath)
	base := filepath.Base(cacheDBPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	queueDBPath := filepath.Join(dir, name+"-tasks"+ext)

	db, err := sql.Open("sqlite3", queueDBPath+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open task database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &stdLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create task client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install task schema: %w", err)
	}

	return &Queue{
		client: client,
		db:     db,
		config: cfg,
	}, nil
}

// Register registers task queues. Must be called before Start().
func (q *Queue) Register(queues ...backlite.Queue) {
	for _, queue := range queues {
		q.client.Register(queue)
	}
}

// Start begins processing tasks. Non-blocking; call from a goroutine and use
// Stop() for graceful shutdown.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	log.Printf("Scrape queue started with %d workers", q.config.Workers)
	q.client.Start(ctx)
}

// Stop gracefully shuts down the queue, waiting for active tasks. Returns
// true if all workers finished before the context deadline.
func (q *Queue) Stop(ctx context.Context) bool {
	q.mu.RLock()
	if !q.started {
		q.mu.RUnlock()
		return true
	}
	q.mu.RUnlock()

	log.Println("Stopping scrape queue...")
	success := q.client.Stop(ctx)
	if success {
		log.Println("Scrape queue stopped gracefully")
	} else {
		log.Println("Scrape queue stopped with timeout (some tasks may not have completed)")
	}
	return success
}

// Close releases all resources. Call after Stop().
func (q *Queue) Close() error {
	if q.db != nil {
		return q.db.Close()
	}
	return nil
}

// Add starts an operation to enqueue one or more tasks.
func (q *Queue) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return q.client.Add(tasks...)
}

// stdLogger implements backlite.Logger using standard library log.
type stdLogger struct{}

func (l *stdLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (l *stdLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
