package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks JSON over HTTP to a ledger node fronting the single
// authoritative chama contract. Batch reads are rate-limited so the node's
// quota is shared fairly with the event subscription.
type Client struct {
	baseURL  string
	contract string
	httpc    *http.Client
	readRL   ratelimit.Limiter
	logger   *zap.Logger
}

// NewClient constructs a Client for the node at baseURL and the given
// contract address. readRPS bounds ReadBatch calls per second.
func NewClient(baseURL, contract string, readRPS int, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("ledger base url is required")
	}
	if contract == "" {
		return nil, errors.New("ledger contract address is required")
	}
	if readRPS <= 0 {
		readRPS = 10
	}

	return &Client{
		baseURL:  baseURL,
		contract: contract,
		httpc:    &http.Client{Timeout: defaultRequestTimeout},
		readRL:   ratelimit.New(readRPS),
		logger:   logger.Named("ledgerClient"),
	}, nil
}

type rpcRequest struct {
	Contract string          `json:"contract"`
	Method   string          `json:"method"`
	Params   json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Message   string `json:"message"`
	Transient bool   `json:"transient"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// LatestGroupID returns the highest assigned group id (the contract's group
// counter; groups are numbered from 1).
func (c *Client) LatestGroupID(ctx context.Context) (uint64, error) {
	var count uint64
	if err := c.call(ctx, "chamaCount", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// ReadBatch fetches the queried groups in a single node round trip.
func (c *Client) ReadBatch(ctx context.Context, queries []GroupQuery) ([]GroupResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}
	c.readRL.Take()

	ids := make([]uint64, 0, len(queries))
	for _, q := range queries {
		ids = append(ids, q.GroupID)
	}
	params, err := json.Marshal(map[string][]uint64{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("marshal read batch: %w", err)
	}

	var wire []wireGroupResult
	if err := c.call(ctx, "readChamas", params, &wire); err != nil {
		return nil, err
	}
	if len(wire) != len(queries) {
		return nil, fmt.Errorf("read batch size mismatch: sent %d queries, got %d results", len(queries), len(wire))
	}

	results := make([]GroupResult, 0, len(wire))
	for _, w := range wire {
		results = append(results, convertGroupResult(w))
	}
	return results, nil
}

// Submit forwards a create or join transaction and returns its handle.
func (c *Client) Submit(ctx context.Context, tx Tx) (string, error) {
	params, err := json.Marshal(encodeTx(tx))
	if err != nil {
		return "", fmt.Errorf("marshal tx: %w", err)
	}

	var handle string
	if err := c.call(ctx, "submit", params, &handle); err != nil {
		return "", err
	}
	if handle == "" {
		return "", errors.New("ledger returned empty tx handle")
	}
	return handle, nil
}

// PollStatus reports the current state of a submitted transaction.
func (c *Client) PollStatus(ctx context.Context, txHandle string) (TxStatus, error) {
	params, err := json.Marshal(map[string]string{"handle": txHandle})
	if err != nil {
		return TxStatus{}, fmt.Errorf("marshal poll params: %w", err)
	}

	var w wireTxStatus
	if err := c.call(ctx, "txStatus", params, &w); err != nil {
		return TxStatus{}, err
	}
	return convertTxStatus(w)
}

// Subscribe opens the node's newline-delimited event stream and decodes it
// onto the returned channel until the context is canceled or the stream
// breaks. The channel is closed either way; callers reconnect.
func (c *Client) Subscribe(ctx context.Context) (<-chan model.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?contract="+c.contract, nil)
	if err != nil {
		return nil, fmt.Errorf("build subscribe request: %w", err)
	}

	// The event stream is long-lived; the client-wide timeout must not apply.
	streamc := &http.Client{Transport: c.httpc.Transport}
	resp, err := streamc.Do(req)
	if err != nil {
		return nil, Transient(fmt.Errorf("subscribe: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, Transient(fmt.Errorf("subscribe: node returned %s", resp.Status))
	}

	events := make(chan model.Event)
	go func() {
		defer close(events)
		defer func() { _ = resp.Body.Close() }()

		dec := json.NewDecoder(resp.Body)
		for {
			var w wireEvent
			if err := dec.Decode(&w); err != nil {
				if ctx.Err() == nil && !errors.Is(err, io.EOF) {
					c.logger.Warn("event stream broke", zap.Error(err))
				}
				return
			}
			ev, err := convertEvent(w)
			if err != nil {
				c.logger.Error("dropping undecodable event", zap.Uint64("group", w.GroupID), zap.Error(err))
				continue
			}
			select {
			case <-ctx.Done():
				return
			case events <- ev:
			}
		}
	}()
	return events, nil
}

func (c *Client) call(ctx context.Context, method string, params json.RawMessage, out any) error {
	body, err := json.Marshal(rpcRequest{Contract: c.contract, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Transient(fmt.Errorf("%s: %w", method, err))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Transient(fmt.Errorf("%s: node returned %s", method, resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: node returned %s", method, resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return Transient(fmt.Errorf("decode %s response: %w", method, err))
	}
	if rpcResp.Error != nil {
		err := fmt.Errorf("%s: %s", method, rpcResp.Error.Message)
		if rpcResp.Error.Transient {
			return Transient(err)
		}
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", method, err)
	}
	return nil
}
