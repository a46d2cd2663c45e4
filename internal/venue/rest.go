package venue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

const defaultHTTPTimeout = 8 * time.Second

// RestClient speaks a perp-DEX gateway's REST protocol. The gateway owns
// venue connectivity and auth; the client only reads market/account state and
// asks for ready-to-sign ledger instructions.
type RestClient struct {
	name    string
	baseURL string
	account string
	http    *http.Client
	log     zerolog.Logger
}

func NewRestClient(name, baseURL, account string, log zerolog.Logger) *RestClient {
	return &RestClient{
		name:    name,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		account: account,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		log:     log,
	}
}

func (c *RestClient) Name() string { return c.name }

// FundingRate fetches the current hourly rate. A gateway 404 or a response
// without a rate maps to market.ErrMissingRateData.
func (c *RestClient) FundingRate(ctx context.Context, instrument string) (market.FundingRate, error) {
	var resp struct {
		Market string           `json:"market"`
		Hourly *decimal.Decimal `json:"hourly"`
	}
	err := c.getJSON(ctx, "/v1/funding", url.Values{"market": {instrument}}, &resp)
	if err != nil {
		if isNotFound(err) {
			return market.FundingRate{}, fmt.Errorf("%s %s: %w", c.name, instrument, market.ErrMissingRateData)
		}
		return market.FundingRate{}, fmt.Errorf("funding rate: %w", err)
	}
	if resp.Hourly == nil {
		return market.FundingRate{}, fmt.Errorf("%s %s: %w", c.name, instrument, market.ErrMissingRateData)
	}
	return market.FundingRate{Venue: c.name, Hourly: *resp.Hourly}, nil
}

func (c *RestClient) TopOfBook(ctx context.Context, instrument string) (market.TopOfBook, error) {
	var resp struct {
		Bid decimal.Decimal `json:"bid"`
		Ask decimal.Decimal `json:"ask"`
	}
	if err := c.getJSON(ctx, "/v1/book", url.Values{"market": {instrument}}, &resp); err != nil {
		return market.TopOfBook{}, fmt.Errorf("top of book: %w", err)
	}
	return market.TopOfBook{Venue: c.name, Bid: resp.Bid, Ask: resp.Ask}, nil
}

func (c *RestClient) Position(ctx context.Context, instrument string) (market.Position, error) {
	var resp struct {
		Size decimal.Decimal `json:"size"`
	}
	q := url.Values{"market": {instrument}, "account": {c.account}}
	if err := c.getJSON(ctx, "/v1/position", q, &resp); err != nil {
		return market.Position{}, fmt.Errorf("position: %w", err)
	}
	return market.Position{Venue: c.name, Size: resp.Size}, nil
}

// wireInstruction is the gateway's JSON encoding of a ledger instruction.
type wireInstruction struct {
	ProgramID string `json:"programId"`
	Keys      []struct {
		Pubkey     string `json:"pubkey"`
		IsSigner   bool   `json:"isSigner"`
		IsWritable bool   `json:"isWritable"`
	} `json:"keys"`
	Data string `json:"data"` // base64
}

// BuildOrder asks the gateway for the venue program's place-perp-order
// instruction matching the given corrective order.
func (c *RestClient) BuildOrder(ctx context.Context, ins market.OrderInstruction) (solana.Instruction, error) {
	body := map[string]any{
		"account": c.account,
		"market":  ins.Market,
		"side":    string(ins.Side),
		"price":   ins.Price.String(),
		"size":    ins.Size.String(),
		"kind":    string(ins.Kind),
	}
	var resp wireInstruction
	if err := c.postJSON(ctx, "/v1/orders/build", body, &resp); err != nil {
		return nil, fmt.Errorf("build order: %w", err)
	}
	return decodeInstruction(resp)
}

func decodeInstruction(w wireInstruction) (solana.Instruction, error) {
	program, err := solana.PublicKeyFromBase58(w.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("program id: %w", err)
	}
	metas := make(solana.AccountMetaSlice, 0, len(w.Keys))
	for _, k := range w.Keys {
		pk, err := solana.PublicKeyFromBase58(k.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("account key: %w", err)
		}
		metas = append(metas, &solana.AccountMeta{PublicKey: pk, IsSigner: k.IsSigner, IsWritable: k.IsWritable})
	}
	data, err := base64.StdEncoding.DecodeString(w.Data)
	if err != nil {
		return nil, fmt.Errorf("instruction data: %w", err)
	}
	return solana.NewInstruction(program, metas, data), nil
}

// Active reports whether the sub-account is provisioned on this venue.
func (c *RestClient) Active(ctx context.Context) (bool, error) {
	var resp struct {
		Active bool `json:"active"`
	}
	if err := c.getJSON(ctx, "/v1/account/status", url.Values{"account": {c.account}}, &resp); err != nil {
		return false, fmt.Errorf("account status: %w", err)
	}
	return resp.Active, nil
}

func (c *RestClient) Activate(ctx context.Context) error {
	body := map[string]any{"account": c.account}
	if err := c.postJSON(ctx, "/v1/account/activate", body, nil); err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	return nil
}

func (c *RestClient) HasOpenOrders(ctx context.Context, instrument string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	q := url.Values{"account": {c.account}, "market": {instrument}}
	if err := c.getJSON(ctx, "/v1/account/open-orders", q, &resp); err != nil {
		return false, fmt.Errorf("open orders: %w", err)
	}
	return resp.Exists, nil
}

func (c *RestClient) CreateOpenOrders(ctx context.Context, instrument string) error {
	body := map[string]any{"account": c.account, "market": instrument}
	if err := c.postJSON(ctx, "/v1/account/open-orders", body, nil); err != nil {
		return fmt.Errorf("create open orders: %w", err)
	}
	return nil
}

func (c *RestClient) Deposit(ctx context.Context, amountUSD decimal.Decimal) error {
	body := map[string]any{"account": c.account, "amountUsd": amountUSD.String()}
	if err := c.postJSON(ctx, "/v1/account/deposit", body, nil); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

type statusError struct {
	code int
	path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.path, e.code)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

func (c *RestClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *RestClient) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *RestClient) do(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("gateway error")
		return &statusError{code: resp.StatusCode, path: path}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
