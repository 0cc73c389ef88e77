package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// Low temperature: extraction wants the same answer for the same menu,
// not creativity.
const (
	geminiTemperature = 0.2
	geminiMaxTokens   = 4096
)

type GeminiClient struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  os.Getenv("GEMINI_MODEL"),
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// ExtractMenu asks Gemini for the structured recipe list of a raw menu
// text. The prompt instructs the model to answer with JSON only; a
// non-JSON answer is rejected here instead of leaking downstream.
func (g *GeminiClient) ExtractMenu(ctx context.Context, menuText string) (string, error) {
	switch {
	case g.apiKey == "":
		return "", errors.New("missing GEMINI_API_KEY")
	case g.model == "":
		return "", errors.New("missing GEMINI_MODEL")
	case menuText == "":
		return "", errors.New("empty menu text")
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: BuildMenuExtractPrompt(menuText)}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     geminiTemperature,
			MaxOutputTokens: geminiMaxTokens,
		},
	}

	raw, err := g.call(ctx, payload)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	output := parsed.Candidates[0].Content.Parts[0].Text
	if !json.Valid([]byte(output)) {
		return "", errors.New("gemini returned non-json output")
	}
	return output, nil
}

func (g *GeminiClient) call(ctx context.Context, payload geminiRequest) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(geminiEndpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error: %s", string(raw))
	}
	return raw, nil
}
