package generate

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGeminiClient(GeminiOptions{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL,
	}, slog.New(slog.DiscardHandler))
}

func modelReply(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	text, err := json.Marshal(payload)
	require.NoError(t, err)

	resp := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": string(text)}},
			},
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.MarshalWrite(w, resp))
}

func TestGenerateEntity_DecodesCandidate(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.UnmarshalRead(r.Body, &gotBody))
		modelReply(t, w, map[string]any{
			"id":       "fra",
			"name":     "France",
			"flagCode": "fr",
			"rank":     7,
			"score":    75,
			"stats":    map[string]float64{"activePersonnel": 205000, "techIndex": 8.5},
		})
	})

	candidate, err := client.GenerateEntity(context.Background(), EntityRequest{
		Kind:         domain.KindNations,
		Name:         "France",
		CurrentCount: 6,
		Stats: []domain.StatDefinition{
			{ID: "activePersonnel", Format: domain.FormatNumber},
			{ID: "techIndex", Format: domain.FormatSlider},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "fra", candidate.ID)
	assert.Equal(t, 8.5, candidate.Stats["techIndex"])

	// The prompt names the registered keys and the slider range.
	require.Len(t, gotBody.Contents, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "activePersonnel, techIndex")
	assert.Contains(t, prompt, "estimation > 6")
	assert.Contains(t, prompt, "between 1.0 (Very Low) and 10.0")

	// The response schema requires every registered stat key.
	statsSchema := gotBody.GenerationConfig.ResponseSchema.Properties["stats"]
	require.NotNil(t, statsSchema)
	assert.ElementsMatch(t, []string{"activePersonnel", "techIndex"}, statsSchema.Required)
}

func TestGenerateEntity_AircraftPromptAndSchema(t *testing.T) {
	var gotBody geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.UnmarshalRead(r.Body, &gotBody))
		modelReply(t, w, map[string]any{
			"id": "rafale", "name": "Dassault Rafale", "origin": "France",
			"rank": 5, "score": 88, "stats": map[string]float64{"speed": 1912},
		})
	})

	candidate, err := client.GenerateEntity(context.Background(), EntityRequest{
		Kind:  domain.KindAircraft,
		Name:  "Rafale",
		Stats: []domain.StatDefinition{{ID: "speed", Format: domain.FormatNumber}},
	})
	require.NoError(t, err)
	assert.Equal(t, "France", candidate.Origin)

	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "military aircraft")
	assert.Contains(t, prompt, "origin")
	assert.Contains(t, gotBody.GenerationConfig.ResponseSchema.Required, "origin")
}

func TestGenerateEntity_MissingAPIKey(t *testing.T) {
	client := NewGeminiClient(GeminiOptions{Model: "gemini-2.5-flash"}, slog.New(slog.DiscardHandler))

	_, err := client.GenerateEntity(context.Background(), EntityRequest{
		Kind: domain.KindNations, Name: "France",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
}

func TestGenerateEntity_UpstreamErrorIsTransport(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.GenerateEntity(context.Background(), EntityRequest{
		Kind: domain.KindNations, Name: "France",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTransportInterrupted)
}

func TestGenerateEntity_EmptyContent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateEntity(context.Background(), EntityRequest{
		Kind: domain.KindNations, Name: "France",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCandidate)
}

func TestCompare_DecodesResult(t *testing.T) {
	var gotBody geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.UnmarshalRead(r.Body, &gotBody))
		modelReply(t, w, map[string]any{
			"analysis": "Close fight.",
			"winner":   "United States",
			"factors":  []string{"air superiority", "logistics"},
		})
	})

	a := domain.Entity{Name: "United States", Score: 98.5, Stats: map[string]float64{"tanks": 5500}}
	b := domain.Entity{Name: "Russia", Score: 94.2, Stats: map[string]float64{"tanks": 12500}}

	result, err := client.Compare(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, "United States", result.Winner)
	assert.Len(t, result.Factors, 2)

	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Compare the military strength of United States and Russia")
	assert.Contains(t, prompt, "Predict a winner")
}
