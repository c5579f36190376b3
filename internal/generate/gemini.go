package generate

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Generative Language API to produce candidates.
type GeminiClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	apiKey      string
	model       string
	baseURL     string
}

// GeminiOptions configures the client.
type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, used in tests.
	BaseURL string
}

// NewGeminiClient creates a Gemini producer.
// Rate limited to roughly 10 requests per minute to stay inside free-tier quotas.
func NewGeminiClient(opts GeminiOptions, logger *slog.Logger) *GeminiClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(6*time.Second), 2),
		logger:      logger,
		apiKey:      opts.APIKey,
		model:       opts.Model,
		baseURL:     baseURL,
	}
}

// Request/response shapes for the generateContent endpoint.

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

// schema mirrors the API's OpenAPI-subset response schema.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateEntity asks the model for a candidate matching the registered schema.
func (c *GeminiClient) GenerateEntity(ctx context.Context, req EntityRequest) (*domain.Entity, error) {
	prompt := buildEntityPrompt(req)

	var candidate domain.Entity
	if err := c.generate(ctx, prompt, entitySchema(req), &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Compare asks the model for a strategic comparison of two entities.
func (c *GeminiClient) Compare(ctx context.Context, a, b domain.Entity) (*Comparison, error) {
	prompt := buildComparePrompt(a, b)

	var result comparisonWire
	if err := c.generate(ctx, prompt, comparisonSchema(), &result); err != nil {
		return nil, err
	}
	return &Comparison{
		Analysis: result.Analysis,
		Winner:   result.Winner,
		Factors:  result.Factors,
	}, nil
}

// comparisonWire is the shape the model is asked to return.
type comparisonWire struct {
	Analysis string   `json:"analysis"`
	Winner   string   `json:"winner"`
	Factors  []string `json:"factors"`
}

// generate performs one generateContent call and decodes the JSON text part
// into dest.
func (c *GeminiClient) generate(ctx context.Context, prompt string, respSchema *schema, dest any) error {
	if c.apiKey == "" {
		return domainerrors.Internal("generative model API key is not configured")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   respSchema,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("calling generative model", "model", c.model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeTransportInterrupted, "generative model request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("generative model returned error",
			"status", resp.StatusCode,
			"body", string(snippet))
		return domainerrors.TransportInterrupted(
			fmt.Sprintf("generative model returned status %d", resp.StatusCode))
	}

	var parsed geminiResponse
	if err := json.UnmarshalRead(resp.Body, &parsed); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeTransportInterrupted, "failed to parse model response")
	}

	text := parsed.text()
	if text == "" {
		return domainerrors.InvalidCandidate("model returned no content")
	}

	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInvalidCandidate, "model returned malformed JSON")
	}
	return nil
}

// text concatenates the text parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// buildEntityPrompt mirrors the dashboard's generation prompt: the stat key
// list is spelled out and slider stats are pinned to the 1.0-10.0 index range.
func buildEntityPrompt(req EntityRequest) string {
	statKeys := strings.Join(domain.StatIDs(req.Stats), ", ")

	var sliderKeys []string
	for _, def := range req.Stats {
		if def.Format == domain.FormatSlider {
			sliderKeys = append(sliderKeys, def.ID)
		}
	}

	var sb strings.Builder
	if req.Kind == domain.KindAircraft {
		fmt.Fprintf(&sb, "Generate a realistic JSON object for the military aircraft %q.\n", req.Name)
		sb.WriteString("Estimate statistics based on real-world public data as of 2024.\n\n")
		sb.WriteString("REQUIRED FIELDS:\n")
		sb.WriteString("- id: unique slug (e.g. f22_raptor)\n")
		sb.WriteString("- name: Full name (e.g. Lockheed Martin F-22 Raptor)\n")
		sb.WriteString("- origin: Country of origin\n")
		fmt.Fprintf(&sb, "- rank: estimation > %d\n", req.CurrentCount)
		sb.WriteString("- score: An integer estimate of combat capability between 10 and 100. F-22 is ~99.\n")
		fmt.Fprintf(&sb, "- stats: A JSON object containing ONLY numerical values for these keys: %s.\n", statKeys)
	} else {
		fmt.Fprintf(&sb, "Generate a realistic JSON object for the country %q for a military strategy app.\n", req.Name)
		sb.WriteString("Estimate statistics based on real-world public data as of 2024.\n\n")
		sb.WriteString("REQUIRED FIELDS:\n")
		sb.WriteString("- id: unique 3 letter slug\n")
		sb.WriteString("- flagCode: ISO 2-letter code\n")
		fmt.Fprintf(&sb, "- rank: estimation > %d\n", req.CurrentCount)
		sb.WriteString("- score: An integer estimate of military power between 10 and 100 (Higher is better). USA is ~98, North Korea ~40.\n")
		fmt.Fprintf(&sb, "- stats: A JSON object containing ONLY numerical values for these specific keys: %s.\n", statKeys)
		sb.WriteString("\nEnsure 'defenseBudget' is in raw USD (no suffix).\n")
	}

	if len(sliderKeys) > 0 {
		fmt.Fprintf(&sb,
			"\nIMPORTANT: The following fields are Power Indices and MUST be a float value between 1.0 (Very Low) and 10.0 (Elite/Superpower): %s. Example: 1.0, 5.5, 9.75.\n",
			strings.Join(sliderKeys, ", "))
	}

	return sb.String()
}

// buildComparePrompt mirrors the dashboard's comparison prompt.
func buildComparePrompt(a, b domain.Entity) string {
	statsA, _ := json.Marshal(a.Stats)
	statsB, _ := json.Marshal(b.Stats)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compare the military strength of %s and %s.\n\n", a.Name, b.Name)
	fmt.Fprintf(&sb, "Score %s: %v\n", a.Name, a.Score)
	fmt.Fprintf(&sb, "Stats %s: %s\n\n", a.Name, statsA)
	fmt.Fprintf(&sb, "Score %s: %v\n", b.Name, b.Score)
	fmt.Fprintf(&sb, "Stats %s: %s\n\n", b.Name, statsB)
	sb.WriteString("Provide a strategic analysis of a hypothetical conventional conflict.\n")
	sb.WriteString("Identify key factors for each side.\n")
	sb.WriteString("Predict a winner in a neutral setting or defensive scenarios.\n\n")
	sb.WriteString("Return JSON.")
	return sb.String()
}

// entitySchema builds the strict response schema for candidate generation.
// Every registered stat key is a required numeric property.
func entitySchema(req EntityRequest) *schema {
	statProps := make(map[string]*schema, len(req.Stats))
	for _, def := range req.Stats {
		statProps[def.ID] = &schema{Type: "NUMBER"}
	}

	props := map[string]*schema{
		"id":          {Type: "STRING"},
		"name":        {Type: "STRING"},
		"rank":        {Type: "INTEGER"},
		"score":       {Type: "NUMBER"},
		"description": {Type: "STRING"},
		"stats": {
			Type:       "OBJECT",
			Properties: statProps,
			Required:   domain.StatIDs(req.Stats),
		},
	}

	required := []string{"id", "name", "stats", "rank", "score"}
	if req.Kind == domain.KindAircraft {
		props["origin"] = &schema{Type: "STRING"}
		required = append(required, "origin")
	} else {
		props["flagCode"] = &schema{Type: "STRING"}
	}

	return &schema{Type: "OBJECT", Properties: props, Required: required}
}

func comparisonSchema() *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"analysis": {Type: "STRING"},
			"winner":   {Type: "STRING"},
			"factors":  {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		},
	}
}
