package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func newMockAVServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %q", q.Get("apikey"))
		}
		w.Header().Set("Content-Type", "application/json")

		switch q.Get("function") {
		case "GLOBAL_QUOTE":
			switch q.Get("symbol") {
			case "IAU":
				w.Write([]byte(`{"Global Quote": {"01. symbol": "IAU", "05. price": "61.3700", "07. latest trading day": "2026-01-02"}}`))
			case "LIMIT":
				w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
			default:
				w.Write([]byte(`{"Global Quote": {}}`))
			}
		case "CURRENCY_EXCHANGE_RATE":
			if q.Get("from_currency") != "USD" || q.Get("to_currency") != "KRW" {
				w.Write([]byte(`{"Error Message": "Invalid API call."}`))
				return
			}
			w.Write([]byte(`{"Realtime Currency Exchange Rate": {"1. From_Currency Code": "USD", "3. To_Currency Code": "KRW", "5. Exchange Rate": "1387.64000000"}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPrice(t *testing.T) {
	srv := newMockAVServer(t, nil)
	client := NewClientWithBaseURL("test-key", srv.URL)

	price, err := client.GetPrice(context.Background(), "iau", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !price.Equal(decimal.RequireFromString("61.37")) {
		t.Errorf("expected 61.37, got %s", price)
	}
}

func TestGetPrice_HomeMarketRefusedWithoutCall(t *testing.T) {
	var calls int32
	srv := newMockAVServer(t, &calls)
	client := NewClientWithBaseURL("test-key", srv.URL)

	_, err := client.GetPrice(context.Background(), "005930", true)
	if !errors.Is(err, ErrHomeMarket) {
		t.Fatalf("expected ErrHomeMarket, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no upstream call, got %d", calls)
	}
}

func TestGetPrice_NoData(t *testing.T) {
	srv := newMockAVServer(t, nil)
	client := NewClientWithBaseURL("test-key", srv.URL)

	for _, sym := range []string{"LIMIT", "NOPE"} {
		_, err := client.GetPrice(context.Background(), sym, false)
		if !errors.Is(err, ErrNoData) {
			t.Errorf("%s: expected ErrNoData, got %v", sym, err)
		}
	}
}

func TestGetExchangeRate(t *testing.T) {
	srv := newMockAVServer(t, nil)
	client := NewClientWithBaseURL("test-key", srv.URL)

	rate, err := client.GetFXRate(context.Background(), "usd", "krw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("1387.64")) {
		t.Errorf("expected 1387.64, got %s", rate)
	}

	if _, err := client.GetFXRate(context.Background(), "EUR", "KRW"); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for an error message payload, got %v", err)
	}
}

func TestDoRequest_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := client.GetPrice(context.Background(), "IAU", false); err == nil {
		t.Error("expected an error for a 503 response")
	}
}
