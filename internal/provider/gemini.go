package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hackterm/chat-backend/internal"
	"github.com/hackterm/chat-backend/internal/config"
)

// GeminiProvider calls the generateContent endpoint with the persona system
// instruction and fixed generation parameters.
type GeminiProvider struct {
	cfg        config.GeminiConfig
	prefix     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeminiProvider(cfg config.GeminiConfig, prefix string, logger *zap.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	return &GeminiProvider{
		cfg:        cfg,
		prefix:     prefix,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

func (p *GeminiProvider) Model() string { return p.cfg.Model }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction content          `json:"systemInstruction"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Reply maps history to role-tagged contents (assistant turns become
// "model"), folds search results into the outgoing user turn when present,
// issues one generateContent call, and post-processes the completion. A
// non-2xx or malformed response returns a *GenerationError; it is fatal for
// the request and never retried here.
func (p *GeminiProvider) Reply(ctx context.Context, history []internal.Message, message string, search *internal.SearchResult) (string, error) {
	payload := generateRequest{
		Contents:          make([]content, 0, len(history)+1),
		SystemInstruction: content{Parts: []part{{Text: systemInstruction(p.prefix)}}},
		GenerationConfig: generationConfig{
			Temperature:     p.cfg.Temperature,
			TopK:            p.cfg.TopK,
			TopP:            p.cfg.TopP,
			MaxOutputTokens: p.cfg.MaxOutputTokens,
		},
	}

	for _, m := range history {
		role := "user"
		if m.Role == internal.RoleAssistant {
			role = "model"
		}
		payload.Contents = append(payload.Contents, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}

	payload.Contents = append(payload.Contents, content{
		Role:  "user",
		Parts: []part{{Text: buildUserTurn(message, search)}},
	})

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.cfg.Endpoint, p.cfg.Model, p.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Status: 0, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Error("generative API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", &GenerationError{Status: resp.StatusCode}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &GenerationError{Status: resp.StatusCode, Reason: "malformed response body"}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &GenerationError{Status: resp.StatusCode, Reason: "empty completion"}
	}

	return sanitizeReply(out.Candidates[0].Content.Parts[0].Text, p.prefix), nil
}
