package metaname

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rpcResult(t *testing.T, result any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"result":  result,
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func intPtr(n int) *int { return &n }

func TestListZoneRecordsBareArray(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		w.Write(rpcResult(t, []map[string]any{
			{"reference": "r1", "name": "www.example.com.", "type": "A", "data": "1.2.3.4", "ttl": 300},
			{"reference": "r2", "name": "", "type": "mx", "data": "mail.example.com.", "aux": 10},
		}))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	records, err := client.ListZoneRecords(context.Background(), "example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ZoneRecord{
		{Reference: "r1", Name: "www.example.com.", Type: RecordTypeA, Data: "1.2.3.4", TTL: 300},
		{Reference: "r2", Name: "@", Type: RecordTypeMX, Data: "mail.example.com.", TTL: DefaultTTL, Aux: intPtr(10)},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	if captured.Method != "dns_zone" {
		t.Errorf("expected method dns_zone, got %q", captured.Method)
	}
	wantParams := []any{"acct", "key", "example.com"}
	if diff := cmp.Diff(wantParams, captured.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestListZoneRecordsWrappedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, map[string]any{
			"records": []map[string]any{
				{"reference": "r1", "name": "example.com.", "type": "NS", "data": "ns1.example.com."},
			},
		}))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	records, err := client.ListZoneRecords(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Type != RecordTypeNS {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestListZoneRecordsChunked(t *testing.T) {
	pages := map[int][]map[string]any{
		0: {
			{"reference": "r1", "name": "a.example.com.", "type": "A", "data": "1.1.1.1"},
			{"reference": "r2", "name": "b.example.com.", "type": "A", "data": "2.2.2.2"},
		},
		2: {
			{"reference": "r3", "name": "c.example.com.", "type": "A", "data": "3.3.3.3"},
		},
	}
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Method != "dns_zone_chunk" {
			t.Errorf("expected method dns_zone_chunk, got %q", req.Method)
		}
		offset := int(req.Params[4].(float64))
		w.Write(rpcResult(t, pages[offset]))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL), WithPageSize(2))
	records, err := client.ListZoneRecords(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
	if calls != 2 {
		t.Errorf("expected 2 chunk requests, got %d", calls)
	}
}

func TestRPCAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": -4, "message": "Domain name not found"},
		})
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	_, err := client.ListZoneRecords(context.Background(), "missing.example.com")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != -4 {
		t.Errorf("expected code -4, got %d", apiErr.Code)
	}
	if !IsDomainNotFound(err) {
		t.Error("expected IsDomainNotFound to match")
	}
}

func TestRPCHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	_, err := client.ListZoneRecords(context.Background(), "example.com")
	var clientErr *Error
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if !IsProviderError(err) {
		t.Error("expected IsProviderError to match")
	}
}

func TestRPCInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	_, err := client.ListZoneRecords(context.Background(), "example.com")
	var clientErr *Error
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
}

func TestRPCMissingResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1})
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	_, err := client.ListZoneRecords(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected an error for a response without a result")
	}
}

func TestCreateZoneRecordPayload(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		w.Write(rpcResult(t, "r9"))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	record := ZoneRecord{Name: "mail", Type: RecordTypeMX, Data: "smtp.example.com.", TTL: 600, Aux: intPtr(20)}
	if err := client.CreateZoneRecord(context.Background(), "example.com", record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Method != "create_dns_record" {
		t.Errorf("expected method create_dns_record, got %q", captured.Method)
	}
	wantPayload := map[string]any{
		"name": "mail",
		"type": "MX",
		"data": "smtp.example.com.",
		"ttl":  float64(600),
		"aux":  float64(20),
	}
	if diff := cmp.Diff(wantPayload, captured.Params[3]); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateZoneRecord(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		w.Write(rpcResult(t, true))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	record := ZoneRecord{Name: "www", Type: RecordTypeA, Data: "203.0.113.20", TTL: 300}
	if err := client.UpdateZoneRecord(context.Background(), "example.com", "r1", record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Method != "update_dns_record" {
		t.Errorf("expected method update_dns_record, got %q", captured.Method)
	}
	if got := captured.Params[3]; got != "r1" {
		t.Errorf("expected reference %q, got %v", "r1", got)
	}
	wantPayload := map[string]any{
		"name": "www",
		"type": "A",
		"data": "203.0.113.20",
		"ttl":  float64(300),
	}
	if diff := cmp.Diff(wantPayload, captured.Params[4]); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteZoneRecord(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		w.Write(rpcResult(t, true))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	if err := client.DeleteZoneRecord(context.Background(), "example.com", "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []any{"acct", "key", "example.com", "r1"}
	if diff := cmp.Diff(want, captured.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Method != "account_balance" {
			t.Errorf("expected method account_balance, got %q", req.Method)
		}
		w.Write(rpcResult(t, map[string]any{"balance": "42.00", "currency": "NZD"}))
	}))
	defer server.Close()

	client := New("acct", "key", WithBaseURL(server.URL))
	info, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info["currency"] != "NZD" {
		t.Errorf("unexpected ping response: %v", info)
	}
}
