package log

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Fields logrus.Fields

type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

type contextKey string

// CorrelationIDKey guarda o ID de correlação da requisição ou do job no contexto
const CorrelationIDKey contextKey = "correlation_id"

const correlationIDField = "correlation_id"

// Campos de requisição que só aparecem fora de desenvolvimento
var verboseFields = map[string]struct{}{
	"remote_addr":    {},
	"user_agent":     {},
	"referer":        {},
	"content_type":   {},
	"content_length": {},
	"query":          {},
	"stack_trace":    {},
}

type logger struct {
	entry *logrus.Entry
}

var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// env configurado por Setup; vazio cai para APP_ENV
var env atomic.Value

// Setup aplica nível e formato ao logger global. Em produção os logs saem em JSON.
func Setup(level, appEnv string) error {
	env.Store(appEnv)

	if isDevelopmentEnv(appEnv) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
		return err
	}

	logrus.SetLevel(parsed)
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
	return nil
}

// SetOutput redireciona o logger global, usado pela CLI para manter o stdout limpo
func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

func IsDevelopment() bool {
	if configured, ok := env.Load().(string); ok && configured != "" {
		return isDevelopmentEnv(configured)
	}
	return isDevelopmentEnv(os.Getenv("APP_ENV"))
}

func isDevelopmentEnv(value string) bool {
	switch strings.ToLower(value) {
	case "", "development", "dev", "local":
		return true
	default:
		return false
	}
}

// SetupTestLogger deixa os testes com saída de texto compacta e nível debug
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetReportCaller(false)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

func (l *logger) WithField(key string, value any) Logger {
	if IsDevelopment() && isVerbose(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	if !IsDevelopment() {
		return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
	}

	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if !isVerbose(k) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(kept)}
}

func isVerbose(key string) bool {
	_, ok := verboseFields[key]
	return ok
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return l.WithField(correlationIDField, correlationID)
	}

	return l
}

func (l *logger) Debug(args ...any)                 { l.entry.Debug(args...) }
func (l *logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logger) Info(args ...any)                  { l.entry.Info(args...) }
func (l *logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logger) Warn(args ...any)                  { l.entry.Warn(args...) }
func (l *logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logger) Error(args ...any)                 { l.entry.Error(args...) }
func (l *logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *logger) Fatal(args ...any)                 { l.entry.Fatal(args...) }
func (l *logger) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }

// WithCorrelationID gera um novo ID e o coloca no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// WithOperation marca um contexto de job ou comando da CLI. O ID leva o nome da operação como prefixo.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, operation+"-"+uuid.New().String()[:8])
}

func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext é o atalho usado pelos serviços: logger global com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
