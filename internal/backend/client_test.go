package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantum-banking/webapp/internal/logging"
)

func TestClientAttachesHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"user":{"name":"Ada"},"account":{"balance":12.5}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, logging.Discard())
	snap, err := client.Dashboard(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if snap.Account.Balance != 12.5 {
		t.Fatalf("expected balance 12.5, got %v", snap.Account.Balance)
	}
}

func TestClientOmitsBearerWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"otp_sent"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, logging.Discard())
	res, err := client.Login(context.Background(), LoginInput{AccountNumber: "1234567890", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
	if res.Status != "otp_sent" {
		t.Fatalf("expected otp_sent, got %q", res.Status)
	}
}

func TestClientExtractsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid account number or password"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, logging.Discard())
	_, err := client.Login(context.Background(), LoginInput{AccountNumber: "1234567890", Password: "bad"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid account number or password" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestClientGenericErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, logging.Discard())
	_, err := client.Dashboard(context.Background(), "tok")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "HTTP error! status: 502" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable host

	client := New(srv.URL, logging.Discard())
	_, err := client.Dashboard(context.Background(), "tok")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be an APIError")
	}
}

func TestTransactionsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"transactions":[{"id":"t1","type":"credit","amount":5}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, logging.Discard())
	page, err := client.Transactions(context.Background(), "tok", 2, 10, "credit")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if gotQuery != "limit=10&page=2&type=credit" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(page.Transactions) != 1 || page.Transactions[0].ID != "t1" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestShouldClearSession(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", &APIError{Status: http.StatusUnauthorized, Message: "nope"}, true},
		{"expired text", &APIError{Status: http.StatusForbidden, Message: "Token has expired"}, true},
		{"invalid text", &APIError{Status: http.StatusBadRequest, Message: "invalid token"}, true},
		{"plain rejection", &APIError{Status: http.StatusBadRequest, Message: "missing field"}, false},
		{"transport", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := ShouldClearSession(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
