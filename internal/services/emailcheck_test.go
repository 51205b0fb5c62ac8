package services

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

type fakeResolver struct {
	lookupFunc func(ctx context.Context, domain string) ([]*net.MX, error)
	calls      int
}

func (r *fakeResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	r.calls++
	if r.lookupFunc != nil {
		return r.lookupFunc(ctx, domain)
	}
	return []*net.MX{{Host: "mx." + domain, Pref: 10}}, nil
}

func TestEmailChecker_InvalidSyntax(t *testing.T) {
	resolver := &fakeResolver{}
	checker := NewEmailChecker(resolver, nil, time.Second, time.Hour, false)

	for _, email := range []string{"", "not-an-email", "missing-domain@", "@nobody"} {
		if err := checker.Check(context.Background(), email); !errors.Is(err, ErrEmailImplausible) {
			t.Errorf("email %q: expected ErrEmailImplausible, got %v", email, err)
		}
	}
	if resolver.calls != 0 {
		t.Errorf("expected no MX lookups for syntactically invalid addresses, got %d", resolver.calls)
	}
}

func TestEmailChecker_Plausible(t *testing.T) {
	resolver := &fakeResolver{}
	cache := newFakeCache()
	checker := NewEmailChecker(resolver, cache, time.Second, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.calls != 1 {
		t.Errorf("expected 1 MX lookup, got %d", resolver.calls)
	}
	if cache.values["emailcheck:example.com"] != "ok" {
		t.Errorf("expected cached verdict ok, got %q", cache.values["emailcheck:example.com"])
	}
}

func TestEmailChecker_DomainNotFound(t *testing.T) {
	resolver := &fakeResolver{
		lookupFunc: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return nil, &net.DNSError{Err: "no such host", Name: domain, IsNotFound: true}
		},
	}
	checker := NewEmailChecker(resolver, nil, time.Second, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@no-such-domain.invalid"); !errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected ErrEmailImplausible, got %v", err)
	}
}

func TestEmailChecker_TimeoutIsImplausible(t *testing.T) {
	resolver := &fakeResolver{
		lookupFunc: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return nil, &net.DNSError{Err: "i/o timeout", Name: domain, IsTimeout: true}
		},
	}
	checker := NewEmailChecker(resolver, nil, 10*time.Millisecond, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@slow-dns.example"); !errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected timeout to count as implausible, got %v", err)
	}
}

func TestEmailChecker_ResolverFailure(t *testing.T) {
	resolver := &fakeResolver{
		lookupFunc: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return nil, errors.New("resolver misconfigured")
		},
	}
	checker := NewEmailChecker(resolver, nil, time.Second, time.Hour, false)

	err := checker.Check(context.Background(), "joe@example.com")
	if err == nil || errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected a checker failure distinct from implausibility, got %v", err)
	}
}

func TestEmailChecker_NoMXRecords(t *testing.T) {
	resolver := &fakeResolver{
		lookupFunc: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return []*net.MX{}, nil
		},
	}
	cache := newFakeCache()
	checker := NewEmailChecker(resolver, cache, time.Second, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@example.com"); !errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected ErrEmailImplausible, got %v", err)
	}
	if cache.values["emailcheck:example.com"] != "bad" {
		t.Errorf("expected cached verdict bad, got %q", cache.values["emailcheck:example.com"])
	}
}

func TestEmailChecker_CacheHitSkipsLookup(t *testing.T) {
	resolver := &fakeResolver{}
	cache := newFakeCache()
	cache.values["emailcheck:example.com"] = "ok"
	cache.values["emailcheck:bad.example"] = "bad"
	checker := NewEmailChecker(resolver, cache, time.Second, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@example.com"); err != nil {
		t.Errorf("unexpected error on cached plausible domain: %v", err)
	}
	if err := checker.Check(context.Background(), "joe@bad.example"); !errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected cached implausible verdict, got %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("expected cache hits to skip MX lookups, got %d calls", resolver.calls)
	}
}

func TestEmailChecker_CacheFailureFallsThrough(t *testing.T) {
	resolver := &fakeResolver{}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	checker := NewEmailChecker(resolver, cache, time.Second, time.Hour, false)

	if err := checker.Check(context.Background(), "joe@example.com"); err != nil {
		t.Errorf("expected cache failure to fall through to the lookup, got %v", err)
	}
	if resolver.calls != 1 {
		t.Errorf("expected 1 MX lookup, got %d", resolver.calls)
	}
}

func TestEmailChecker_StubSkipsLookup(t *testing.T) {
	resolver := &fakeResolver{}
	checker := NewEmailChecker(resolver, nil, time.Second, time.Hour, true)

	if err := checker.Check(context.Background(), "joe@example.com"); err != nil {
		t.Errorf("unexpected error in stub mode: %v", err)
	}
	if err := checker.Check(context.Background(), "not-an-email"); !errors.Is(err, ErrEmailImplausible) {
		t.Errorf("expected syntax checking to still run in stub mode, got %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("expected no MX lookups in stub mode, got %d", resolver.calls)
	}
}
