package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/offers/filter", nil)
	req.RemoteAddr = addr
	return req
}

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cl := NewClientLimiter(1, 1)
	cl.now = func() time.Time { return clock }

	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000", "10.0.0.3:1000"} {
		cl.Allow(requestFrom(addr))
	}
	if n := cl.Clients(); n != 3 {
		t.Fatalf("clients = %d, want 3", n)
	}

	clock = clock.Add(DefaultClientIdle / 2)
	cl.Allow(requestFrom("10.0.0.1:2000"))

	clock = clock.Add(DefaultClientIdle/2 + time.Second)
	cl.Allow(requestFrom("10.0.0.4:1000"))

	// .2 and .3 went quiet; .1 was seen half an idle period ago.
	if n := cl.Clients(); n != 2 {
		t.Errorf("clients after sweep = %d, want 2", n)
	}
}

func TestClientLimiterKeepsBudgetPerClient(t *testing.T) {
	cl := NewClientLimiter(0.001, 1)
	if !cl.Allow(requestFrom("10.0.0.1:1")) {
		t.Fatal("first request should pass")
	}
	if cl.Allow(requestFrom("10.0.0.1:2")) {
		t.Error("second request from the same host should be limited")
	}
	if !cl.Allow(requestFrom("10.0.0.2:1")) {
		t.Error("other host should have its own budget")
	}
}

func TestClientLimiterDisabled(t *testing.T) {
	cl := NewClientLimiter(0, 0)
	for i := 0; i < 50; i++ {
		if !cl.Allow(requestFrom("10.0.0.1:1")) {
			t.Fatalf("request %d limited", i)
		}
	}
}
