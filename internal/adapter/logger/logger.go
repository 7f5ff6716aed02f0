package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	entry *logrus.Entry
}

func New(service string) Logger {
	return NewWithWriter(service, os.Stdout)
}

// NewWithWriter builds a logger that writes JSON lines to w
func NewWithWriter(service string, w io.Writer) Logger {
	hostname, _ := os.Hostname()

	base := &logrus.Logger{
		Out: w,
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000000000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.DebugLevel,
	}

	return &jsonLogger{
		entry: base.WithFields(logrus.Fields{
			"service":  service,
			"hostname": hostname,
		}),
	}
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details).Info(message)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details).Debug(message)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	entry := l.with(action, requestID, details)
	if err != nil {
		entry = entry.WithField("error", newErrorInfo(err))
	}
	entry.Error(message)
}

func (l *jsonLogger) with(action, requestID string, details map[string]interface{}) *logrus.Entry {
	fields := logrus.Fields{
		"action":     action,
		"request_id": requestID,
	}
	if len(details) > 0 {
		fields["details"] = details
	}
	return l.entry.WithFields(fields)
}

// Nop discards everything; used where logging is optional
func Nop() Logger {
	return NewWithWriter("nop", io.Discard)
}
