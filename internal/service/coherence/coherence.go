// Package coherence scores how well ideas flow through a text, and how well
// the text stays on an optional topic, by delegating to a Gemini model with
// a fixed analysis prompt. The component is optional: without an API key the
// pipeline runs with coherence reported as absent.
package coherence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/textrefine/refinescore/internal/cache"
	"github.com/textrefine/refinescore/internal/model"
)

// ErrModel covers every analyzer failure: model transport errors, malformed
// JSON replies and schema violations. Callers map it to an internal error.
var ErrModel = errors.New("coherence: model analysis failed")

// systemPrompt fixes the scoring rubric, the weighting formula and the reply
// schema. The model is asked to self-enforce the formula; replies are still
// validated before use.
const systemPrompt = `You are a text coherence and topic relevance analyzer. Your task is to analyze how well ideas flow and connect in the given text, and how well it stays on topic when one is provided.

Consistency seed: "Always maintain consistent scoring across identical texts. If you've seen this text before, give it the same score as before."

Scoring criteria for text coherence:
- 0.9-1.0: Exceptional flow, ideas progress logically, excellent transitions, easy to follow
- 0.7-0.8: Good flow, minor logical gaps, some connection issues between ideas
- 0.5-0.6: Basic flow but with noticeable jumps or disconnects between ideas
- 0.3-0.4: Poor flow, ideas feel disconnected or out of order
- 0.0-0.2: No discernible flow, completely disconnected ideas

Scoring criteria for topic coherence (when topic is provided):
- 0.9-1.0: Text is entirely focused on the topic with strong relevance throughout
- 0.7-0.8: Mostly on topic with minor digressions
- 0.5-0.6: Somewhat related but frequently strays from the main topic
- 0.3-0.4: Weak connection to the topic, mostly off-topic
- 0.0-0.2: Completely unrelated to the given topic

Important scoring rules:
1. If a topic is provided, the score should be significantly impacted by topic coherence.
2. Use this formula for score calculation:
   - If no topic: score = text_coherence
   - If topic: score = (text_coherence * 0.3) + (topic_coherence * 0.7)
3. Be strict with topic coherence - if the text doesn't relate well to the topic, the score should be substantially lower.

For each analysis, provide:
1. A coherence score between 0 and 1 (1 being perfectly coherent)
2. A concise feedback summary (max 2-3 sentences) that focuses on:
   - How well ideas connect and flow together
   - How well the text maintains focus on the given topic (if provided)
   - Specific examples of strong connections or areas needing improvement
3. If a topic is provided, analyze how well the text stays on topic
4. Provide 2-3 specific suggestions for improvement that focus on:
   - Improving logical flow between ideas
   - Strengthening topic relevance (if applicable)
   - Making connections between concepts clearer

Format the response as JSON with these fields:
{
    "text_coherence": float,  # Score between 0 and 1
    "topic_coherence": float if topic else None,  # How well text stays on topic (0-1)
    "score": float,    # Weighted average of coherence scores
    "feedback": str,   # Concise feedback focused on coherence and topic relevance
    "suggestions": list[str],  # Specific suggestions for improving coherence
    "confidence": float        # Confidence score between 0 and 1
}

Example response with topic:
{
    "text_coherence": 0.8,
    "topic_coherence": 0.6,
    "score": 0.66,
    "feedback": "Your text flows well with clear connections between ideas, but frequently strays from the given topic of 'renewable energy'. The section discussing fossil fuel history, while interesting, is not relevant to the main topic.",
    "suggestions": [
        "Focus more directly on renewable energy by removing or significantly reducing the section about fossil fuel history",
        "Add stronger transitions to maintain focus on renewable energy throughout the text"
    ],
    "confidence": 0.9
}

Example response without topic:
{
    "text_coherence": 0.75,
    "topic_coherence": null,
    "score": 0.75,
    "feedback": "Your text has a logical progression of ideas but could benefit from better transitions between sections. The connection between the first and second paragraphs is unclear.",
    "suggestions": [
        "Add a transition sentence to better connect the first and second paragraphs",
        "Consider reordering some points to create a more natural flow of ideas"
    ],
    "confidence": 0.95
}

Important notes:
1. Never comment on grammar, spelling, or correctness - focus only on coherence and topic relevance
2. Be consistent with your scoring across similar texts
3. Provide specific examples in your feedback
4. Make your suggestions actionable and specific to coherence/topic relevance
5. The confidence score should reflect how certain you are about your analysis
6. If you're unsure about a score, explain why in the feedback
7. When a topic is provided, prioritize topic relevance in both scoring and feedback`

// Analyzer scores coherence through a Gemini model. Results are memoized by
// content hash and topic; the model is never retried on failure.
type Analyzer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	cache   *cache.Cache[model.CoherenceResult]
	logger  *slog.Logger
}

// New returns an analyzer bound to the given model. The API key is required;
// callers that have none should not construct an analyzer at all.
func New(ctx context.Context, apiKey, modelID string, timeout time.Duration, logger *slog.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("coherence: api key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("coherence: create client: %w", err)
	}
	return &Analyzer{
		client:  client,
		model:   modelID,
		timeout: timeout,
		cache:   cache.MustNew[model.CoherenceResult](cache.DefaultSize),
		logger:  logger,
	}, nil
}

// Analyze scores the text's coherence, against topic when non-empty. Empty
// text returns the zero result without a model call.
func (a *Analyzer) Analyze(ctx context.Context, text, topic string) (model.CoherenceResult, error) {
	if strings.TrimSpace(text) == "" {
		return emptyResult(topic), nil
	}

	key, cacheable := cache.Key(text, topic)
	if cacheable {
		if result, ok := a.cache.Get(key); ok {
			a.logger.Debug("coherence cache hit")
			return result, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(buildPrompt(text, topic)),
		&genai.GenerateContentConfig{
			ResponseMIMEType:  "application/json",
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		})
	if err != nil {
		return model.CoherenceResult{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	result, err := parseResult(resp.Text())
	if err != nil {
		a.logger.Error("coherence response rejected", "error", err)
		return model.CoherenceResult{}, err
	}

	if cacheable {
		a.cache.Add(key, result)
	}
	return result, nil
}

// buildPrompt renders the per-request user prompt. The topic line reads
// "None" when no topic was given, matching the rubric wording in the system
// prompt.
func buildPrompt(text, topic string) string {
	if topic == "" {
		topic = "None"
	}
	return fmt.Sprintf(`Analyze the coherence of the following text:
'%s'

Topic to analyze against: %s

Focus on:
- How well ideas connect and flow together
- How relevant the text is to the given topic (if provided)
- Specific examples of strong or weak coherence`, text, topic)
}

// parseResult decodes the model reply and enforces the schema bounds: every
// score must be inside [0,1].
func parseResult(raw string) (model.CoherenceResult, error) {
	var result model.CoherenceResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return model.CoherenceResult{}, fmt.Errorf("%w: decode reply: %v", ErrModel, err)
	}
	if err := validate(result); err != nil {
		return model.CoherenceResult{}, fmt.Errorf("%w: %v", ErrModel, err)
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result, nil
}

func validate(r model.CoherenceResult) error {
	if !in01(r.Score) {
		return fmt.Errorf("score %v outside [0,1]", r.Score)
	}
	if !in01(r.TextCoherence) {
		return fmt.Errorf("text_coherence %v outside [0,1]", r.TextCoherence)
	}
	if r.TopicCoherence != nil && !in01(*r.TopicCoherence) {
		return fmt.Errorf("topic_coherence %v outside [0,1]", *r.TopicCoherence)
	}
	if !in01(r.Confidence) {
		return fmt.Errorf("confidence %v outside [0,1]", r.Confidence)
	}
	return nil
}

func in01(v float64) bool {
	return v >= 0 && v <= 1
}

// emptyResult is returned for blank input: nothing to analyze, full
// confidence in that.
func emptyResult(topic string) model.CoherenceResult {
	result := model.CoherenceResult{
		Feedback:    "Empty text provided for analysis",
		Suggestions: []string{"Provide a valid text for coherence analysis"},
		Confidence:  1,
	}
	if topic != "" {
		zero := 0.0
		result.TopicCoherence = &zero
	}
	return result
}
