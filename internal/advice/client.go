package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
)

const (
	scanEndpoint   = "/v1/receipts/scan"
	adviceEndpoint = "/v1/advice/monthly"
)

// APIError is a non-2xx reply from the advice service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("advice service returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("advice service returned status %d: %s", e.StatusCode, e.Message)
}

// Receipt is the structured result of scanning a receipt image.
type Receipt struct {
	Merchant string
	Total    int64 // Total in cents
	Date     time.Time
	Category string
}

// Client talks to the external advice service. Transient failures are
// retried with backoff before they surface to the caller.
type Client struct {
	baseURL string
	token   string
	client  *retryablehttp.Client
}

func NewClient(baseURL, token string) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  rc,
	}
}

// ScanReceipt uploads a receipt image and returns the fields the
// service extracted from it.
func (c *Client) ScanReceipt(ctx context.Context, filename string, file io.Reader) (*Receipt, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart form: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scanEndpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	var payload receiptPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.toReceipt()
}

// MonthlyAdvice submits a month of activity and returns the advice
// text the service wrote for it.
func (c *Client) MonthlyAdvice(ctx context.Context, s Summary) (string, error) {
	body, err := json.Marshal(s.payload())
	if err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+adviceEndpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Advice string `json:"advice"`
	}

	if err := c.do(req, &payload); err != nil {
		return "", err
	}

	return payload.Advice, nil
}

func (c *Client) do(req *retryablehttp.Request, result any) error {
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling advice service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading advice response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parsing advice response: %w", err)
		}
	}

	return nil
}

func parseAPIError(status int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	return &APIError{StatusCode: status, Message: msg}
}

// receiptPayload is the wire shape of a scanned receipt. Amounts come
// back as decimal strings and are converted to cents.
type receiptPayload struct {
	Merchant string `json:"merchant"`
	Total    string `json:"total"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

func (p *receiptPayload) toReceipt() (*Receipt, error) {
	total, err := decimal.NewFromString(p.Total)
	if err != nil {
		return nil, fmt.Errorf("parsing receipt total %q: %w", p.Total, err)
	}

	r := &Receipt{
		Merchant: p.Merchant,
		Total:    total.Shift(2).Round(0).IntPart(),
		Category: p.Category,
	}

	if p.Date != "" {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing receipt date %q: %w", p.Date, err)
		}

		r.Date = d
	}

	return r, nil
}
