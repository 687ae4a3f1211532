package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockProber struct {
	err   error
	calls int
}

func (m *mockProber) Probe(_ context.Context) error {
	m.calls++
	return m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New().WithCheck("search", &mockProber{}).WithCheck("catalogs", &mockProber{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["search"] != CheckOK {
		t.Errorf("expected search %q, got %q", CheckOK, r.Checks["search"])
	}
	if r.Checks["catalogs"] != CheckOK {
		t.Errorf("expected catalogs %q, got %q", CheckOK, r.Checks["catalogs"])
	}
}

func TestCheck_PartialFailure(t *testing.T) {
	svc := New().
		WithCheck("search", &mockProber{err: errors.New("wrong answer")}).
		WithCheck("catalogs", &mockProber{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search"] != CheckError {
		t.Errorf("expected search %q, got %q", CheckError, r.Checks["search"])
	}
}

func TestCheck_AllFailing(t *testing.T) {
	svc := New().WithCheck("search", &mockProber{err: errors.New("boom")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_NoChecks(t *testing.T) {
	r := New().Check(context.Background())
	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 0 {
		t.Errorf("expected no checks, got %v", r.Checks)
	}
}

func TestWithCheck_IgnoresNil(t *testing.T) {
	svc := New().WithCheck("nothing", nil)
	if len(svc.probes) != 0 {
		t.Errorf("expected nil prober to be skipped")
	}
}

func TestProberFunc(t *testing.T) {
	called := false
	p := ProberFunc(func(context.Context) error {
		called = true
		return nil
	})
	svc := New().WithCheck("func", p)
	svc.Check(context.Background())
	if !called {
		t.Error("expected ProberFunc to be called")
	}
}

func TestCheck_RunsEveryProbe(t *testing.T) {
	a, b := &mockProber{}, &mockProber{err: errors.New("x")}
	svc := New().WithCheck("a", a).WithCheck("b", b)
	svc.Check(context.Background())
	svc.Check(context.Background())
	if a.calls != 2 || b.calls != 2 {
		t.Errorf("calls = %d, %d; want 2, 2", a.calls, b.calls)
	}
}
