package flog

import (
	"testing"

	"golang.org/x/xerrors"
)

func TestLoggerDoesNotPanic(t *testing.T) {
	Debug("debug", Field("test", t.Name()))
	Debugf("debugf %s", t.Name())
	Info("info", Field("test", t.Name()))
	Infof("infof %s", t.Name())
	Warn("warn", Field("test", t.Name()))
	Warnf("warnf %s", t.Name())
	Error(xerrors.New("test error"), Field("test", t.Name()))
	Errorf("errorf %s", t.Name())
}

func TestZapFieldsIgnoresNonFields(t *testing.T) {
	fields := zapFields([]interface{}{Field("a", 1), "stray string", 42})
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
}
