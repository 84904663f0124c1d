package database

import (
	"fmt"
	"sync"
	"time"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

// ConnectionPoolMonitor monitors the database connection pool
type ConnectionPoolMonitor struct {
	db           *Manager
	logger       coreport.Logger
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	ticker := time.NewTicker(interval)

	// Collect metrics initially
	if err := m.collectMetrics(); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	close(m.stopChan)
}

// GetMetrics returns the current connection pool metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}

	return *m.metricsCache
}

// collectMetrics collects current connection pool metrics
func (m *ConnectionPoolMonitor) collectMetrics() error {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.metricsCache = &ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}

	// Log metrics if too many connections are in use
	threshold := float64(stats.MaxOpenConnections) * 0.8
	if float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
