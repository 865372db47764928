// pkg/socrata/client.go
package socrata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/config"
	"github.com/citydata/oath-analytics/pkg/model"
)

// selectFields are the dataset columns requested from the SODA API, in
// oath_cases column order.
var selectFields = []string{
	"ticket_number",   // -> case_id
	"hearing_date",    // -> hearing_date
	"issuing_agency",  // -> violation_type
	"hearing_result",  // -> decision
	"penalty_imposed", // -> amount_due
	"paid_amount",     // -> amount_paid
}

// Client fetches OATH case pages from the Socrata SODA CSV endpoint
type Client struct {
	cfg           *config.SocrataConfig
	httpClient    *http.Client
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// NewClient creates a new Socrata client
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.L()
	}
	return &Client{
		cfg: cfg.Socrata,
		httpClient: &http.Client{
			Timeout: cfg.Socrata.RequestTimeout,
		},
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		logger:        logger.Named("socrata-client"),
	}
}

// FetchAll pages through the dataset until the configured row target
// is reached or the feed runs out, returning the collected records.
func (c *Client) FetchAll(ctx context.Context) ([]model.RawRecord, error) {
	var records []model.RawRecord
	offset := 0

	for len(records) < c.cfg.RowTarget {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		records = append(records, page...)
		c.logger.Info("Fetched page",
			zap.Int("offset", offset),
			zap.Int("page_rows", len(page)),
			zap.Int("total_rows", len(records)))

		offset += c.cfg.PageLimit
		if len(page) < c.cfg.PageLimit {
			// Short page means we reached the end of the dataset
			break
		}
	}

	if len(records) > c.cfg.RowTarget {
		records = records[:c.cfg.RowTarget]
	}

	return records, nil
}

// fetchPage retrieves one page of CSV rows with exponential backoff.
// Some Socrata stacks reject Accept: text/csv with a 406; those get a
// plain-text retry like the original loader did.
func (c *Client) fetchPage(ctx context.Context, offset int) ([]model.RawRecord, error) {
	pageURL, err := c.pageURL(offset)
	if err != nil {
		return nil, err
	}

	backoff := c.retryDelay
	var lastErr error

	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		body, err := c.get(ctx, pageURL, "text/csv")
		if err == nil {
			return parseRecords(body)
		}
		lastErr = err

		c.logger.Warn("Page fetch failed, retrying",
			zap.Int("offset", offset),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))
	}

	return nil, fmt.Errorf("exhausted %d attempts: %w", c.retryAttempts, lastErr)
}

// pageURL builds the SODA query URL for a page offset
func (c *Client) pageURL(offset int) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Socrata URL: %w", err)
	}

	params := url.Values{}
	params.Set("$select", strings.Join(selectFields, ","))
	params.Set("$limit", fmt.Sprintf("%d", c.cfg.PageLimit))
	params.Set("$offset", fmt.Sprintf("%d", offset))
	// No $order: server-side ordering causes timeouts on this dataset
	if c.cfg.UseDateFilter && c.cfg.DateFrom != "" {
		params.Set("$where", fmt.Sprintf("%s >= '%s'", c.cfg.DateField, c.cfg.DateFrom))
	}

	base.RawQuery = params.Encode()
	return base.String(), nil
}

// get performs a single GET and returns the body on HTTP 200
func (c *Client) get(ctx context.Context, pageURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.cfg.AppToken != "" {
		req.Header.Set("X-App-Token", c.cfg.AppToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotAcceptable && accept == "text/csv" {
		return c.get(ctx, pageURL, "text/plain")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// parseRecords converts one CSV page into raw records. The header is
// checked against the expected column count; empty cells become nulls.
func parseRecords(body []byte) ([]model.RawRecord, error) {
	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(selectFields) {
		return nil, fmt.Errorf("unexpected column count %d (expected %d)", len(header), len(selectFields))
	}
	reader.FieldsPerRecord = len(selectFields)

	var records []model.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		records = append(records, model.RawRecord{
			CaseID:        nullString(row[0]),
			HearingDate:   nullDate(row[1]),
			ViolationType: nullString(row[2]),
			Decision:      nullString(row[3]),
			AmountDue:     nullString(row[4]),
			AmountPaid:    nullString(row[5]),
		})
	}

	return records, nil
}
