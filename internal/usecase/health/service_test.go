package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(context.Context) error { return f.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(fakePinger{}, fakeChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy status, got %s", report.Status)
	}
	if report.Checks["database"] != CheckOK || report.Checks["embedding"] != CheckOK {
		t.Errorf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_DegradedOnDBFailure(t *testing.T) {
	svc := New(fakePinger{err: errors.New("connection refused")}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded status, got %s", report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("expected database check error, got %v", report.Checks)
	}
}

func TestCheck_NilEmbeddingSkipped(t *testing.T) {
	svc := New(fakePinger{}, nil)

	report := svc.Check(context.Background())
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check should be absent for lexical-only deployments")
	}
}
