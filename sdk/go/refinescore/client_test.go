package refinescore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// mockServer creates an httptest server that mimics the scoring API.
func mockServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	return httptest.NewServer(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestEvaluateReturnsScore(t *testing.T) {
	var receivedBody EvaluationRequest
	var receivedHeaders http.Header
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			receivedHeaders = r.Header.Clone()
			if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error": map[string]any{"code": "INVALID_INPUT", "message": err.Error()},
				})
				return
			}
			topicCoherence := 0.88
			writeJSON(w, http.StatusOK, map[string]any{
				"data": GlobalScore{
					Score:          0.8512,
					ScoreInPercent: 85.12,
					Correctness: CorrectnessResult{
						Score:     0.95,
						WordCount: 42,
						Issues: []TextIssue{
							{
								Message:     "Possible typo",
								ErrorText:   "teh",
								StartOffset: 10,
								EndOffset:   13,
								Category:    CategorySpellingTyping,
								Penalty:     8,
							},
						},
						Breakdown: []CategoryBreakdown{
							{Category: CategorySpellingTyping, Count: 1, Penalty: 8},
						},
					},
					Vocabulary: VocabularyResult{Score: 0.7},
					Readability: ReadabilityResult{
						Score:                  0.8,
						FleschReadingEase:      72.5,
						FleschReadingEaseLevel: "Fairly Easy to read",
					},
					Coherence: &CoherenceResult{
						Score:          0.9,
						TextCoherence:  0.91,
						TopicCoherence: &topicCoherence,
						Confidence:     0.85,
					},
				},
				"meta": map[string]any{"request_id": "req-1"},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	score, err := client.Evaluate(context.Background(), EvaluationRequest{
		Text:     "The quick brown fox jumps over the lazy dog, again and again and again.",
		Topic:    "foxes",
		Audience: AudienceGeneral,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if score.Score != 0.8512 {
		t.Errorf("expected score 0.8512, got %v", score.Score)
	}
	if score.Correctness.WordCount != 42 {
		t.Errorf("expected word_count 42, got %d", score.Correctness.WordCount)
	}
	if len(score.Correctness.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(score.Correctness.Issues))
	}
	if got := score.Correctness.Issues[0].Category; got != CategorySpellingTyping {
		t.Errorf("expected category %q, got %q", CategorySpellingTyping, got)
	}
	if score.Coherence == nil {
		t.Fatal("expected coherence to be present")
	}
	if score.Coherence.TopicCoherence == nil || *score.Coherence.TopicCoherence != 0.88 {
		t.Errorf("expected topic_coherence 0.88, got %v", score.Coherence.TopicCoherence)
	}

	// Verify the request the server saw.
	if receivedBody.Topic != "foxes" {
		t.Errorf("expected topic 'foxes', got %q", receivedBody.Topic)
	}
	if receivedBody.Audience != "general" {
		t.Errorf("expected audience 'general', got %q", receivedBody.Audience)
	}
	if got := receivedHeaders.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %q", got)
	}
	if got := receivedHeaders.Get("User-Agent"); got != "refinescore-go/0.1.0" {
		t.Errorf("expected User-Agent 'refinescore-go/0.1.0', got %q", got)
	}
}

func TestEvaluateNullCoherence(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			// Coherence is null when the server has no analyzer configured.
			_, _ = w.Write([]byte(`{
				"data": {
					"score": 0.62,
					"score_in_percent": 62,
					"correctness": {"score": 0.9, "word_count": 25, "normalized_penalty": 0.1, "issues": [], "breakdown": []},
					"vocabulary": {"score": 0.7},
					"readability": {"score": 0.8},
					"coherence": null
				},
				"meta": {"request_id": "req-2"}
			}`))
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	score, err := client.Evaluate(context.Background(), EvaluationRequest{Text: "some text"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if score.Coherence != nil {
		t.Errorf("expected nil coherence, got %+v", score.Coherence)
	}
	if score.Score != 0.62 {
		t.Errorf("expected score 0.62, got %v", score.Score)
	}
}

func TestErrorTypesMapCorrectly(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		code       string
		message    string
		checkFn    func(error) bool
		checkLabel string
	}{
		{
			name: "400", status: http.StatusBadRequest,
			code: "INVALID_INPUT", message: "Text is too short for evaluation (minimum 20 words required).",
			checkFn: IsInvalidInput, checkLabel: "IsInvalidInput",
		},
		{
			name: "404", status: http.StatusNotFound,
			code: "NOT_FOUND", message: "resource not found",
			checkFn: IsNotFound, checkLabel: "IsNotFound",
		},
		{
			name: "408", status: http.StatusRequestTimeout,
			code: "UPSTREAM_TIMEOUT", message: "the grammar check took too long",
			checkFn: IsUpstreamTimeout, checkLabel: "IsUpstreamTimeout",
		},
		{
			name: "429", status: http.StatusTooManyRequests,
			code: "RATE_LIMITED", message: "rate limit exceeded",
			checkFn: IsRateLimited, checkLabel: "IsRateLimited",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := mockServer(t, map[string]http.HandlerFunc{
				"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, tc.status, map[string]any{
						"error": map[string]any{
							"code":    tc.code,
							"message": tc.message,
						},
						"meta": map[string]any{"request_id": "req-err"},
					})
				},
			})
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			_, err := client.Evaluate(context.Background(), EvaluationRequest{Text: "x"})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			apiErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, apiErr.StatusCode)
			}
			if apiErr.Code != tc.code {
				t.Errorf("expected code %q, got %q", tc.code, apiErr.Code)
			}
			if apiErr.RequestID != "req-err" {
				t.Errorf("expected request ID 'req-err', got %q", apiErr.RequestID)
			}
			if !tc.checkFn(err) {
				t.Errorf("%s returned false for a %d", tc.checkLabel, tc.status)
			}
			if !strings.Contains(err.Error(), tc.code) {
				t.Errorf("error string %q does not mention code %q", err.Error(), tc.code)
			}
		})
	}
}

func TestRateLimitedRetryAfter(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "13")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error": map[string]any{"code": "RATE_LIMITED", "message": "slow down"},
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Evaluate(context.Background(), EvaluationRequest{Text: "x"})
	if !IsRateLimited(err) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	apiErr := err.(*Error)
	if apiErr.RetryAfter != 13*time.Second {
		t.Errorf("expected RetryAfter 13s, got %v", apiErr.RetryAfter)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Evaluate(context.Background(), EvaluationRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Code != "Bad Gateway" {
		t.Errorf("expected code 'Bad Gateway', got %q", apiErr.Code)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("expected raw body as message, got %q", apiErr.Message)
	}
}

func TestHealth(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /health": func(w http.ResponseWriter, r *http.Request) {
			// Health is served bare, without the data envelope.
			writeJSON(w, http.StatusOK, HealthResponse{
				Status:  "healthy",
				Service: "Text Refine Score Engine",
			})
		},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	resp, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %q", resp.Status)
	}
	if resp.Service != "Text Refine Score Engine" {
		t.Errorf("unexpected service name %q", resp.Service)
	}
}

func TestTimeoutHandling(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			// Simulate a slow evaluation.
			time.Sleep(2 * time.Second)
			writeJSON(w, http.StatusOK, map[string]any{"data": GlobalScore{}})
		},
	})
	defer srv.Close()

	client, cErr := NewClient(Config{
		BaseURL: srv.URL,
		Timeout: 100 * time.Millisecond, // Very short timeout.
	})
	if cErr != nil {
		t.Fatalf("NewClient failed: %v", cErr)
	}

	_, err := client.Evaluate(context.Background(), EvaluationRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := mockServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/evaluation": func(w http.ResponseWriter, r *http.Request) {
			// Drain the body so the server starts its background read and can
			// detect the client disconnect, which cancels r.Context().
			_, _ = io.Copy(io.Discard, r.Body)
			close(started)
			<-r.Context().Done()
		},
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := newTestClient(t, srv.URL)
	_, err := client.Evaluate(ctx, EvaluationRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected error after cancellation, got nil")
	}
}

func TestNewClientValidation(t *testing.T) {
	c, err := NewClient(Config{})
	if err == nil {
		t.Fatal("expected error for empty BaseURL, got nil")
	}
	if c != nil {
		t.Error("expected nil client on error")
	}
	if !strings.Contains(err.Error(), "BaseURL is required") {
		t.Errorf("error %q does not mention BaseURL", err.Error())
	}

	// Happy path; trailing slash is trimmed.
	c, err = NewClient(Config{BaseURL: "http://localhost:8000/"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c.baseURL != "http://localhost:8000" {
		t.Errorf("expected trimmed base URL, got %q", c.baseURL)
	}
}
