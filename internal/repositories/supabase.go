package repositories

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"challenz/internal/models"
)

const (
	maxSupabaseResponseBytes  = 8 << 20  // 8 MiB
	maxSupabaseErrorBodyBytes = 32 << 10 // 32 KiB
	defaultSupabasePageSize   = 1000

	businessProfileColumns = "id,business_name,first_name,last_name,location,phone"
	ledgerColumns          = "id,merchant_id,fee_amount,currency,status,payout_date,created_at,paid_at,order_id,payout_batch_id,payment_receipt_number"
)

// SupabaseConfig holds the PostgREST endpoint settings.
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
	HTTPClient *http.Client
	// PageSize is the number of rows asked for per request. The server may
	// still return fewer.
	PageSize int
}

// errRangeNotSatisfiable marks a Range that starts past the last row.
var errRangeNotSatisfiable = errors.New("requested range not satisfiable")

type supabaseEscrowRepository struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	pageSize   int
}

// NewSupabaseEscrowRepository reads escrow data through the hosted REST API
// instead of a direct database connection.
func NewSupabaseEscrowRepository(cfg SupabaseConfig) (EscrowRepository, error) {
	repo, err := newSupabaseEscrowRepository(cfg)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func newSupabaseEscrowRepository(cfg SupabaseConfig) (*supabaseEscrowRepository, error) {
	if cfg.URL == "" {
		return nil, errors.New("SUPABASE_URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, errors.New("SUPABASE_SERVICE_KEY is required")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid SUPABASE_URL %q", cfg.URL)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		client = &http.Client{Timeout: timeout, Transport: transport}
	}

	return &supabaseEscrowRepository{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: client,
		pageSize:   cfg.PageSize,
	}, nil
}

func (r *supabaseEscrowRepository) ListBusinessProfiles(ctx context.Context) ([]models.BusinessProfile, error) {
	query := url.Values{}
	query.Set("select", businessProfileColumns)
	query.Set("order", "created_at.desc,id.desc")

	profiles, err := fetchAll[models.BusinessProfile](ctx, r, models.BusinessProfile{}.TableName(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to list business users: %w", err)
	}
	return profiles, nil
}

func (r *supabaseEscrowRepository) GetBusinessProfile(ctx context.Context, id string) (*models.BusinessProfile, error) {
	query := url.Values{}
	query.Set("select", businessProfileColumns)
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	var profiles []models.BusinessProfile
	if err := r.get(ctx, models.BusinessProfile{}.TableName(), query, &profiles); err != nil {
		return nil, fmt.Errorf("failed to get business user: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return &profiles[0], nil
}

func (r *supabaseEscrowRepository) ListLedgerEntries(ctx context.Context, merchantIDs ...string) ([]models.EscrowLedgerEntry, error) {
	query := url.Values{}
	query.Set("select", ledgerColumns)
	query.Set("order", "created_at.desc,id.desc")
	if len(merchantIDs) > 0 {
		query.Set("merchant_id", "in.("+strings.Join(merchantIDs, ",")+")")
	}

	entries, err := fetchAll[models.EscrowLedgerEntry](ctx, r, models.EscrowLedgerEntry{}.TableName(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to list escrow entries: %w", err)
	}
	return entries, nil
}

// fetchAll walks the table with Range requests. PostgREST silently caps each
// response at its max-rows setting, so pages continue from the last row
// received until the Content-Range total is reached or a page comes back
// short.
func fetchAll[T any](ctx context.Context, r *supabaseEscrowRepository, table string, query url.Values) ([]T, error) {
	pageSize := r.pageSize
	if pageSize <= 0 {
		pageSize = defaultSupabasePageSize
	}

	var all []T
	for from := 0; ; {
		headers := http.Header{}
		headers.Set("Range-Unit", "items")
		headers.Set("Range", fmt.Sprintf("%d-%d", from, from+pageSize-1))
		headers.Set("Prefer", "count=exact")

		body, respHeader, err := r.do(ctx, table, query, headers)
		if errors.Is(err, errRangeNotSatisfiable) {
			break
		}
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode %s rows: %w", table, err)
		}
		all = append(all, page...)
		from += len(page)

		total, known := parseContentRangeTotal(respHeader.Get("Content-Range"))
		switch {
		case len(page) == 0:
			return all, nil
		case known && from >= total:
			return all, nil
		case !known && len(page) < pageSize:
			return all, nil
		}
	}
	return all, nil
}

// parseContentRangeTotal reads the total from "0-9/100" or "*/0". An
// unknown total ("0-9/*") reports false.
func parseContentRangeTotal(contentRange string) (int, bool) {
	i := strings.LastIndex(contentRange, "/")
	if i < 0 {
		return 0, false
	}
	total, err := strconv.Atoi(strings.TrimSpace(contentRange[i+1:]))
	if err != nil {
		return 0, false
	}
	return total, true
}

func (r *supabaseEscrowRepository) get(ctx context.Context, table string, query url.Values, dest interface{}) error {
	body, _, err := r.do(ctx, table, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// do sends one GET and returns the body of a successful response. The size
// limit applies per response.
func (r *supabaseEscrowRepository) do(ctx context.Context, table string, query url.Values, headers http.Header) ([]byte, http.Header, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", r.baseURL, url.PathEscape(table), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", r.serviceKey)
	req.Header.Set("Authorization", "Bearer "+r.serviceKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		return nil, resp.Header, errRangeNotSatisfiable
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxSupabaseErrorBodyBytes))
		return nil, resp.Header, fmt.Errorf("supabase API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSupabaseResponseBytes+1))
	if err != nil {
		return nil, resp.Header, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxSupabaseResponseBytes {
		return nil, resp.Header, fmt.Errorf("supabase response exceeds %d bytes", maxSupabaseResponseBytes)
	}
	return body, resp.Header, nil
}
