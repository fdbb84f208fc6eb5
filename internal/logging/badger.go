package logging

import "go.uber.org/zap"

// BadgerLogger routes badger's internal messages into zap.
// It satisfies badger.Logger.
type BadgerLogger struct {
	sugar *zap.SugaredLogger
}

func NewBadgerLogger(logger *zap.Logger) *BadgerLogger {
	return &BadgerLogger{sugar: logger.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *BadgerLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *BadgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Infof is demoted to debug; badger reports every open and compaction at info.
func (l *BadgerLogger) Infof(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *BadgerLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
