package metaname

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// ProdAPIURL is the live Metaname JSON-RPC endpoint.
	ProdAPIURL = "https://metaname.net/api/1.1"

	// TestAPIURL is the Metaname sandbox endpoint. Operations against it
	// never touch live zones.
	TestAPIURL = "https://test.metaname.net/api/1.1"

	defaultTimeout = 10 * time.Second
)

// Client is a thin wrapper around Metaname's JSON-RPC 2.0 API. Every call
// carries the account reference and API token as the first two positional
// parameters, per the Metaname convention.
type Client struct {
	baseURL    string
	accountRef string
	apiKey     string
	httpClient *http.Client
	pageSize   int
	nextID     atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-default endpoint, e.g. TestAPIURL
// or an httptest server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize makes zone listing use the chunked dns_zone_chunk method
// with the given page size instead of a single dns_zone call.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// New returns a Client authenticated with the given account reference and
// API token, targeting the production endpoint unless overridden.
func New(accountRef, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    ProdAPIURL,
		accountRef: accountRef,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type rpcResponse struct {
	Error  *rpcError       `json:"error"`
	Result json.RawMessage `json:"result"`
}

// rpc calls a JSON-RPC method and returns the raw result payload.
func (c *Client) rpc(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	body := rpcRequest{
		Jsonrpc: "2.0",
		Method:  method,
		Params:  append([]any{c.accountRef, c.apiKey}, params...),
		ID:      c.nextID.Add(1),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("unexpected HTTP %d", resp.StatusCode)}
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &Error{Message: "response was not valid JSON", Err: err}
	}

	if envelope.Error != nil {
		return nil, &APIError{
			Message: envelope.Error.Message,
			Code:    envelope.Error.Code,
			Data:    envelope.Error.Data,
		}
	}
	if envelope.Result == nil {
		return nil, &Error{Message: "response missing 'result'"}
	}
	return envelope.Result, nil
}

// Ping checks authentication by querying the account balance.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	raw, err := c.rpc(ctx, "account_balance", nil)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		// Some deployments return a bare scalar balance.
		var scalar any
		if err := json.Unmarshal(raw, &scalar); err != nil {
			return nil, &Error{Message: "unexpected account_balance result", Err: err}
		}
		out["balance"] = scalar
	}
	return out, nil
}

// ListZoneRecords retrieves all DNS records for domain. A trailing dot on
// the domain is accepted and stripped. When a page size is configured the
// listing is fetched in chunks via dns_zone_chunk.
func (c *Client) ListZoneRecords(ctx context.Context, domain string) ([]ZoneRecord, error) {
	domain = strings.TrimSuffix(domain, ".")
	if c.pageSize > 0 {
		return c.listChunked(ctx, domain)
	}

	raw, err := c.rpc(ctx, "dns_zone", []any{domain})
	if err != nil {
		return nil, err
	}

	// The result is a bare array on current deployments; older ones wrap
	// it as {"records": [...]}.
	var list []apiRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		var wrapped struct {
			Records []apiRecord `json:"records"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, &Error{Message: "unexpected dns_zone result", Err: err}
		}
		list = wrapped.Records
	}

	records := make([]ZoneRecord, 0, len(list))
	for _, item := range list {
		records = append(records, recordFromAPI(item))
	}
	return records, nil
}

func (c *Client) listChunked(ctx context.Context, domain string) ([]ZoneRecord, error) {
	var records []ZoneRecord
	offset := 0
	for {
		raw, err := c.rpc(ctx, "dns_zone_chunk", []any{domain, c.pageSize, offset})
		if err != nil {
			return nil, err
		}
		var chunk []apiRecord
		if err := json.Unmarshal(raw, &chunk); err != nil {
			return nil, &Error{Message: "unexpected dns_zone_chunk result", Err: err}
		}
		if len(chunk) == 0 {
			break
		}
		for _, item := range chunk {
			records = append(records, recordFromAPI(item))
		}
		offset += len(chunk)
		if len(chunk) < c.pageSize {
			break
		}
	}
	return records, nil
}

// CreateZoneRecord creates a DNS record within domain.
func (c *Client) CreateZoneRecord(ctx context.Context, domain string, record ZoneRecord) error {
	domain = strings.TrimSuffix(domain, ".")
	_, err := c.rpc(ctx, "create_dns_record", []any{domain, record.APIPayload()})
	return err
}

// UpdateZoneRecord replaces the record identified by reference.
func (c *Client) UpdateZoneRecord(ctx context.Context, domain, reference string, record ZoneRecord) error {
	domain = strings.TrimSuffix(domain, ".")
	_, err := c.rpc(ctx, "update_dns_record", []any{domain, reference, record.APIPayload()})
	return err
}

// DeleteZoneRecord deletes a record from domain by its reference.
func (c *Client) DeleteZoneRecord(ctx context.Context, domain, reference string) error {
	domain = strings.TrimSuffix(domain, ".")
	_, err := c.rpc(ctx, "delete_dns_record", []any{domain, reference})
	return err
}
