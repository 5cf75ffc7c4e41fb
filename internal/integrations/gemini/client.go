package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const receiptPrompt = `Extract the purchase data from this receipt.
Respond with JSON only, no markdown, using exactly these keys:
{"merchant": string, "date": "YYYY-MM-DD", "total": number, "currency": "ISO 4217 code", "vatAmount": number or null}`

const (
	defaultCurrency   = "EUR"
	maxMerchantLength = 255
	// NUMERIC(12, 2)
	maxAmount = 1e10
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// generator часть *genai.GenerativeModel, которую использует клиент
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ReceiptData данные, распознанные из чека
type ReceiptData struct {
	Merchant  string   `json:"merchant"`
	Date      string   `json:"date"`
	Total     float64  `json:"total"`
	Currency  string   `json:"currency"`
	VATAmount *float64 `json:"vatAmount"`
}

// Client клиент Gemini для распознавания чеков
type Client struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
	log     Logger
}

// NewClient создает клиента Gemini с указанной моделью
func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, log Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrUnavailable, err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

// Close закрывает соединение с API
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ExtractReceipt распознаёт чек из изображения или PDF
func (c *Client) ExtractReceipt(ctx context.Context, mimeType string, data []byte) (*ReceiptData, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(receiptPrompt),
	)
	if err != nil {
		c.log.Error("Gemini request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var out ReceiptData
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &out); err != nil {
		c.log.Warn("Gemini returned non-JSON output: %q", text)
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := normalize(&out); err != nil {
		c.log.Warn("Gemini returned unusable receipt data: %v", err)
		return nil, err
	}

	return &out, nil
}

// normalize проверяет данные модели на соответствие колонкам receipts
func normalize(out *ReceiptData) error {
	out.Merchant = strings.TrimSpace(out.Merchant)
	out.Date = strings.TrimSpace(out.Date)
	out.Currency = strings.ToUpper(strings.TrimSpace(out.Currency))

	if out.Merchant == "" || out.Date == "" || out.Total == 0 {
		return fmt.Errorf("%w: merchant, date and total are required", ErrInvalidResponse)
	}
	if utf8.RuneCountInString(out.Merchant) > maxMerchantLength {
		return fmt.Errorf("%w: merchant is longer than %d characters", ErrInvalidResponse, maxMerchantLength)
	}
	if !validAmount(out.Total) {
		return fmt.Errorf("%w: total %v is out of range", ErrInvalidResponse, out.Total)
	}
	if out.VATAmount != nil && *out.VATAmount != 0 && !validAmount(*out.VATAmount) {
		return fmt.Errorf("%w: vat amount %v is out of range", ErrInvalidResponse, *out.VATAmount)
	}

	if out.Currency == "" {
		out.Currency = defaultCurrency
	}
	if !currencyPattern.MatchString(out.Currency) {
		return fmt.Errorf("%w: currency %q is not an ISO 4217 code", ErrInvalidResponse, out.Currency)
	}

	return nil
}

func validAmount(v float64) bool {
	abs := math.Abs(v)
	return !math.IsNaN(v) && abs > 0 && abs < maxAmount
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

// stripCodeFence модель иногда оборачивает JSON в ```json ... ```
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
