package zone

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"opsnz/metasync/internal/auditlog"
	"opsnz/metasync/internal/config"
	"opsnz/metasync/internal/database"
)

// rpcRequest mirrors the JSON-RPC request envelope for assertions.
type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

func decodeRPC(t *testing.T, r *http.Request) rpcRequest {
	t.Helper()
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("failed to decode rpc request: %v", err)
	}
	return req
}

func writeResult(t *testing.T, w http.ResponseWriter, id int64, result any) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      id,
	})
	if err != nil {
		t.Fatalf("failed to encode rpc response: %v", err)
	}
}

// setupZoneTest redirects config and audit storage to temp files and
// injects credentials through the environment.
func setupZoneTest(t *testing.T) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(t.TempDir(), "audit.db"))
	t.Cleanup(database.ResetPath)
	t.Setenv("METANAME_ACCOUNT_REF", "acct-1")
	t.Setenv("METANAME_API_TOKEN", "secret-key")
}

// execZone runs the zone command with buffers wired up.
func execZone(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestRecords_Table(t *testing.T) {
	setupZoneTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		if req.Method != "dns_zone" {
			t.Errorf("unexpected method %q", req.Method)
		}
		writeResult(t, w, req.ID, []map[string]any{
			{"reference": "r1", "name": "www.example.nz", "type": "A", "data": "203.0.113.10", "ttl": 300},
			{"reference": "r2", "name": "example.nz", "type": "MX", "data": "mail.example.nz", "aux": 10, "ttl": 3600},
		})
	}))
	defer server.Close()

	stdout, stderr := execZone(t, "records", "example.nz", "--endpoint", server.URL, "--plain")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"NAME", "www", "203.0.113.10", "10 mail.example.nz."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got: %s", want, stdout)
		}
	}
}

func TestRecords_TypeFilter(t *testing.T) {
	setupZoneTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		writeResult(t, w, req.ID, []map[string]any{
			{"reference": "r1", "name": "www.example.nz", "type": "A", "data": "203.0.113.10", "ttl": 300},
			{"reference": "r2", "name": "example.nz", "type": "TXT", "data": "hello", "ttl": 3600},
		})
	}))
	defer server.Close()

	stdout, _ := execZone(t, "records", "example.nz", "--endpoint", server.URL, "--plain", "--type", "txt")

	if !strings.Contains(stdout, "hello") {
		t.Errorf("expected TXT record in output, got: %s", stdout)
	}
	if strings.Contains(stdout, "203.0.113.10") {
		t.Errorf("expected A record to be filtered out, got: %s", stdout)
	}
}

func TestRecords_InvalidDomain(t *testing.T) {
	setupZoneTest(t)

	_, stderr := execZone(t, "records", "not_a_domain", "--plain")

	if stderr == "" {
		t.Error("expected a domain validation error")
	}
}

func TestCreate_SendsRecord(t *testing.T) {
	setupZoneTest(t)

	var created map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		if req.Method != "create_dns_record" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if got := req.Params[2]; got != "example.nz" {
			t.Errorf("expected domain param %q, got %v", "example.nz", got)
		}
		created, _ = req.Params[3].(map[string]any)
		writeResult(t, w, req.ID, "r-new")
	}))
	defer server.Close()

	stdout, stderr := execZone(t, "create", "example.nz",
		"--endpoint", server.URL,
		"--name", "www", "--type", "A", "--value", "203.0.113.10", "--ttl", "300")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Created A www.example.nz") {
		t.Errorf("expected creation confirmation, got: %s", stdout)
	}

	if created == nil {
		t.Fatal("no record payload captured")
	}
	if created["name"] != "www" || created["type"] != "A" || created["data"] != "203.0.113.10" {
		t.Errorf("unexpected record payload: %v", created)
	}
	if created["ttl"] != float64(300) {
		t.Errorf("expected ttl 300, got %v", created["ttl"])
	}
}

func TestCreate_WritesAuditEntry(t *testing.T) {
	setupZoneTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		writeResult(t, w, req.ID, "r-new")
	}))
	defer server.Close()

	_, stderr := execZone(t, "create", "example.nz",
		"--endpoint", server.URL,
		"--name", "www", "--type", "A", "--value", "203.0.113.10")

	if stderr != "" {
		t.Fatalf("unexpected stderr: %s", stderr)
	}

	repo, err := auditlog.Open()
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	defer repo.Close()

	entries, err := repo.ListByZone("example.nz", 10)
	if err != nil {
		t.Fatalf("failed to list audit entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Action != "create" || entry.RecordName != "www" || entry.RecordType != "A" || entry.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("unexpected audit entry: %+v", entry)
	}
}

func TestCreate_RejectsInvalidValue(t *testing.T) {
	setupZoneTest(t)

	_, stderr := execZone(t, "create", "example.nz",
		"--name", "www", "--type", "A", "--value", "not-an-ip")

	if !strings.Contains(stderr, "IPv4") {
		t.Errorf("expected IPv4 validation error, got: %s", stderr)
	}
}

func TestDelete_ResolvesReference(t *testing.T) {
	setupZoneTest(t)

	var deletedRef any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		switch req.Method {
		case "dns_zone":
			writeResult(t, w, req.ID, []map[string]any{
				{"reference": "r-9", "name": "www.example.nz", "type": "A", "data": "203.0.113.10", "ttl": 300},
			})
		case "delete_dns_record":
			deletedRef = req.Params[3]
			writeResult(t, w, req.ID, true)
		default:
			t.Errorf("unexpected method %q", req.Method)
		}
	}))
	defer server.Close()

	stdout, stderr := execZone(t, "delete", "example.nz",
		"--endpoint", server.URL, "--yes",
		"--name", "www.example.nz", "--type", "A", "--value", "203.0.113.10", "--ttl", "300")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Deleted") {
		t.Errorf("expected deletion confirmation, got: %s", stdout)
	}
	if deletedRef != "r-9" {
		t.Errorf("expected reference %q to be deleted, got %v", "r-9", deletedRef)
	}
}

func TestExport_MultipleZones(t *testing.T) {
	setupZoneTest(t)

	records := map[string][]map[string]any{
		"one.nz": {
			{"reference": "r1", "name": "www.one.nz", "type": "A", "data": "203.0.113.1", "ttl": 300},
		},
		"two.nz": {
			{"reference": "r2", "name": "two.nz", "type": "TXT", "data": "hello", "ttl": 3600},
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRPC(t, r)
		domain, _ := req.Params[2].(string)
		writeResult(t, w, req.ID, records[domain])
	}))
	defer server.Close()

	stdout, stderr := execZone(t, "export", "one.nz", "two.nz", "--endpoint", server.URL)

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}

	var exported map[string][]struct {
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		TTL    int      `json:"ttl"`
		Values []string `json:"values"`
	}
	if err := json.Unmarshal([]byte(stdout), &exported); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if len(exported) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(exported))
	}
	one := exported["one.nz"]
	if len(one) != 1 || one[0].Name != "www" || one[0].Values[0] != "203.0.113.1" {
		t.Errorf("unexpected export for one.nz: %+v", one)
	}
	two := exported["two.nz"]
	if len(two) != 1 || two[0].Name != "@" || two[0].Values[0] != "hello" {
		t.Errorf("unexpected export for two.nz: %+v", two)
	}
}

func TestExport_ListFailure(t *testing.T) {
	setupZoneTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	// Single attempt so the test does not sit in retry backoff.
	configPath := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(configPath)
	t.Cleanup(config.ResetPath)
	cfg := &config.Config{Retries: 1}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	_, stderr := execZone(t, "export", "one.nz", "--endpoint", server.URL)

	if !strings.Contains(stderr, "one.nz") {
		t.Errorf("expected failing domain in error, got: %s", stderr)
	}
}
