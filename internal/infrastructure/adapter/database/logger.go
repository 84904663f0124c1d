package database

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm/logger"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// DatabaseLogger is a custom GORM logger that uses our core logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
}

// NewDatabaseLogger creates a new database logger
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string) logger.Interface {
	var logLevel logger.LogLevel
	switch strings.ToLower(level) {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	case "info":
		logLevel = logger.Info
	default:
		logLevel = logger.Info
	}

	return &DatabaseLogger{
		coreLogger:    coreLogger,
		logLevel:      logLevel,
		slowThreshold: 200 * time.Millisecond,
		timeProvider:  timeProvider,
	}
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, map[string]any{"source": "database"})
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, map[string]any{"source": "database"})
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, map[string]any{"source": "database"})
	}
}

// Trace logs SQL operations
func (l *DatabaseLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	var elapsed time.Duration
	if l.timeProvider != nil {
		elapsed = l.timeProvider.Since(begin)
	} else {
		elapsed = time.Since(begin)
	}

	sql, rows := fc()

	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "database",
	}

	// Extract query type for better categorization
	queryType := extractQueryType(sql)
	if queryType != "" {
		fields["type"] = queryType
	}

	// Extract table name if possible
	tableName := extractTableName(sql)
	if tableName != "" {
		fields["table"] = tableName
	}

	// Add error information if present
	if err != nil {
		fields["error"] = err.Error()
	}

	// Log based on error and elapsed time
	switch {
	case err != nil && l.logLevel >= logger.Error:
		l.coreLogger.Error("SQL Error", fields)
	case elapsed > l.slowThreshold && l.slowThreshold > 0:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields) // Using debug level for regular SQL queries to reduce noise
	}
}

// extractQueryType determines the type of SQL query (SELECT, INSERT, UPDATE, DELETE)
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	if strings.HasPrefix(sqlUpper, "SELECT") {
		return "SELECT"
	} else if strings.HasPrefix(sqlUpper, "INSERT") {
		return "INSERT"
	} else if strings.HasPrefix(sqlUpper, "UPDATE") {
		return "UPDATE"
	} else if strings.HasPrefix(sqlUpper, "DELETE") {
		return "DELETE"
	}
	return ""
}

// extractTableName attempts to extract the table name from the SQL query
func extractTableName(sql string) string {
	// This is a very simplified extraction and won't work for all queries
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	var fromIndex int
	if strings.Contains(sqlUpper, " FROM ") {
		fromIndex = strings.Index(sqlUpper, " FROM ") + 6
	} else if strings.Contains(sqlUpper, " INTO ") {
		fromIndex = strings.Index(sqlUpper, " INTO ") + 6
	} else if strings.Contains(sqlUpper, "UPDATE ") {
		fromIndex = strings.Index(sqlUpper, "UPDATE ") + 7
	} else {
		return ""
	}

	remainder := sqlUpper[fromIndex:]
	spaceIndex := strings.Index(remainder, " ")

	if spaceIndex == -1 {
		return remainder
	}

	return remainder[:spaceIndex]
}
