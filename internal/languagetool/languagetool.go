// Package languagetool is an HTTP client for a LanguageTool grammar server.
// It maps upstream matches onto the normalized issue model used by the
// scoring services.
package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/textrefine/refinescore/internal/model"
)

// Sentinel errors for the two failure modes callers need to tell apart:
// a slow upstream (surfaces as 408) and a broken one (surfaces as 500).
var (
	ErrTimeout     = errors.New("languagetool: check timed out")
	ErrUnavailable = errors.New("languagetool: service unavailable")
)

const (
	checkLanguage = "en-US"
	warmupText    = "This is a test sentence."
)

// Client checks text against a LanguageTool server. Construct once and
// share; it is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a client for the LanguageTool server at baseURL. Each check
// is bounded by timeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Message      string `json:"message"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
		Category  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
}

// Check sends text to the grammar server and returns the normalized issues
// in upstream order. Timeouts map to ErrTimeout; any other transport,
// status, or decode failure maps to ErrUnavailable.
func (c *Client) Check(ctx context.Context, text string) ([]model.TextIssue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", checkLanguage)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("languagetool check failed",
			"status", resp.StatusCode,
			"body", string(body))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	runes := []rune(text)
	issues := make([]model.TextIssue, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		issues = append(issues, toIssue(runes, m))
	}
	return issues, nil
}

// Warmup primes the grammar server's pipelines with a short sentence so the
// first real request does not absorb the model load time.
func (c *Client) Warmup(ctx context.Context) error {
	if _, err := c.Check(ctx, warmupText); err != nil {
		return fmt.Errorf("languagetool warmup: %w", err)
	}
	return nil
}

// toIssue converts an upstream match to the normalized issue model. Offsets
// are rune positions in the checked text; the offending substring is sliced
// out directly so error_text always matches the input.
func toIssue(text []rune, m match) model.TextIssue {
	category := model.CategoryFromLanguageTool(m.Rule.Category.ID)

	var replacements []string
	for _, r := range m.Replacements {
		if len(replacements) == model.MaxReplacements {
			break
		}
		replacements = append(replacements, r.Value)
	}

	start, end := clampSpan(len(text), m.Offset, m.Length)
	return model.TextIssue{
		Message:       m.Message,
		Replacements:  replacements,
		ErrorText:     string(text[start:end]),
		ErrorLength:   m.Length,
		StartOffset:   start,
		EndOffset:     end,
		Category:      category,
		RuleIssueType: fmt.Sprintf("%s - %s", m.Rule.Category.ID, m.Rule.IssueType),
		Penalty:       category.Severity(),
	}
}

// clampSpan bounds an upstream offset/length pair to the text so malformed
// spans never panic the slice.
func clampSpan(n, offset, length int) (int, int) {
	start := min(max(offset, 0), n)
	end := min(max(offset+length, start), n)
	return start, end
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
