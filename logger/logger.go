package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Logger wraps logrus logger
type Logger struct {
	*logrus.Logger
	service string
}

// New creates a JSON logger writing to stdout at the given level
func New(serviceName, level string) *Logger {
	return NewWithOutput(serviceName, level, os.Stdout)
}

// NewWithOutput is New with a custom writer
func NewWithOutput(serviceName, level string, out io.Writer) *Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)
	log.SetLevel(parseLevel(level))

	return &Logger{Logger: log, service: serviceName}
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Entry returns an entry carrying the service field
func (l *Logger) Entry() *logrus.Entry {
	return l.WithField("service", l.service)
}

// GormLogLevel maps the logger level onto GORM's own logger
func (l *Logger) GormLogLevel() gormlogger.LogLevel {
	switch l.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return gormlogger.Info
	case logrus.InfoLevel, logrus.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// GinMiddleware logs every request once it has been handled
func GinMiddleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		entry := l.Entry().WithFields(fields)

		if len(c.Errors) > 0 {
			entry.WithField("error", c.Errors.String()).Error("HTTP request failed")
			return
		}
		if c.Writer.Status() >= 500 {
			entry.Error("HTTP request failed")
			return
		}
		entry.Debug("HTTP request completed")
	}
}
