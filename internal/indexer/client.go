package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultPageDelay  = 500 * time.Millisecond
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultMaxDelay   = 5 * time.Second

	maxBodyBytes  = 32 << 20
	maxErrMessage = 512
)

// Client talks to an Esplora-compatible REST indexer (blockstream.info,
// mempool.space or a self-hosted electrs).
type Client struct {
	baseURL    string
	client     *http.Client
	timeout    time.Duration
	timeoutSet bool
	pageDelay  time.Duration
	maxRetries int
	retryDelay time.Duration
	maxDelay   time.Duration
	maxTxs     int
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. It also applies to a client
// passed with WithHTTPClient, which is copied rather than modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
		c.timeoutSet = true
	}
}

// WithPageDelay sets the courtesy wait between pagination requests.
func WithPageDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the initial backoff delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxTransactions caps pagination. Zero means unlimited.
func WithMaxTransactions(n int) ClientOption {
	return func(c *Client) {
		c.maxTxs = n
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates an indexer client rooted at baseURL, e.g.
// https://blockstream.info/api.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    DefaultTimeout,
		pageDelay:  DefaultPageDelay,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		maxDelay:   DefaultMaxDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case c.client == nil:
		c.client = &http.Client{Timeout: c.timeout}
	case c.timeoutSet:
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// PageFunc observes pagination progress: the page just fetched and the
// running transaction total.
type PageFunc func(page, fetched int)

type addressResponse struct {
	Address    string               `json:"address"`
	ChainStats *models.AddressStats `json:"chain_stats"`
}

// FetchAddressStats returns the lifetime chain stats of address.
func (c *Client) FetchAddressStats(ctx context.Context, address string) (models.AddressStats, error) {
	const op = "fetch address stats"

	var resp addressResponse
	if err := c.getJSON(ctx, op, c.baseURL+"/address/"+url.PathEscape(address), &resp); err != nil {
		return models.AddressStats{}, err
	}
	if resp.ChainStats == nil {
		// Missing stats count as zero rather than a failure.
		return models.AddressStats{}, nil
	}
	return *resp.ChainStats, nil
}

// FetchAllTransactions walks the address history page by page, keyed by
// the last txid seen, until the indexer returns an empty page.
//
// A failed page ends pagination and the transactions gathered so far are
// returned with a nil error; the failure is only logged. Cancelling ctx
// aborts at the next request or page delay and discards the accumulation.
func (c *Client) FetchAllTransactions(ctx context.Context, address string, onPage PageFunc) ([]models.RawTransaction, error) {
	txs, lastErr := c.paginate(ctx, address, onPage)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if lastErr != nil {
		log.Printf("[Indexer] Pagination for %s stopped after %d transactions: %v", address, len(txs), lastErr)
	}
	return txs, nil
}

func (c *Client) paginate(ctx context.Context, address string, onPage PageFunc) ([]models.RawTransaction, error) {
	const op = "fetch transactions"

	all := []models.RawTransaction{}
	seen := make(map[string]struct{})
	lastTxid := ""
	for page := 1; ; page++ {
		if page > 1 {
			if err := sleepContext(ctx, c.pageDelay); err != nil {
				return all, err
			}
		}

		var batch []models.RawTransaction
		if err := c.getJSON(ctx, op, c.txsURL(address, lastTxid), &batch); err != nil {
			return all, err
		}
		if len(batch) == 0 {
			return all, nil
		}

		// An indexer that ignores the cursor repeats earlier pages.
		added := 0
		for _, tx := range batch {
			if _, dup := seen[tx.Txid]; dup {
				continue
			}
			seen[tx.Txid] = struct{}{}
			all = append(all, tx)
			added++
		}
		if added == 0 {
			return all, nil
		}
		if onPage != nil {
			onPage(page, len(all))
		}
		if c.maxTxs > 0 && len(all) >= c.maxTxs {
			return all[:c.maxTxs], nil
		}

		next := batch[len(batch)-1].Txid
		if err := validateCursor(next); err != nil {
			return all, &UpstreamError{Op: op, StatusCode: http.StatusOK, Message: "malformed pagination cursor", Err: err}
		}
		if next == lastTxid {
			return all, nil
		}
		lastTxid = next
	}
}

func (c *Client) txsURL(address, afterTxid string) string {
	u := c.baseURL + "/address/" + url.PathEscape(address) + "/txs"
	if afterTxid != "" {
		u += "?" + url.Values{"after_txid": {afterTxid}}.Encode()
	}
	return u
}

// validateCursor requires a full 32-byte hex txid.
func validateCursor(txid string) error {
	if len(txid) != chainhash.MaxHashStringSize {
		return fmt.Errorf("txid %q has length %d", txid, len(txid))
	}
	_, err := chainhash.NewHashFromStr(txid)
	return err
}

// getJSON performs a GET with retries and exponential backoff.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out interface{}) error {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, delay); err != nil {
				return err
			}
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		err := c.get(ctx, op, rawURL, out)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		lastErr = err

		var upErr *UpstreamError
		if !errors.As(err, &upErr) || !upErr.retryable() {
			return err
		}
		if attempt < c.maxRetries {
			log.Printf("[Indexer] %s attempt %d failed, retrying in %s: %v", op, attempt+1, delay, err)
		}
	}
	return lastErr
}

func (c *Client) get(ctx context.Context, op, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrMessage {
			msg = msg[:maxErrMessage]
		}
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Message: "malformed payload", Err: err}
	}
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
