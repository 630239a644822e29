package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// GeminiClient implements Client against the Gemini REST API.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	imageModel string
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:     apiKey,
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		Model:      "gemini-2.5-flash",
		ImageModel: "gemini-2.5-flash-image-preview",
		Timeout:    2 * time.Minute,
	}
}

// NewGeminiClient creates a Gemini client with default config.
func NewGeminiClient(apiKey string) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a Gemini client with custom config.
func NewGeminiClientWithConfig(config GeminiConfig) *GeminiClient {
	defaults := DefaultGeminiConfig(config.APIKey)
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.ImageModel == "" {
		config.ImageModel = defaults.ImageModel
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		apiKey:     config.APIKey,
		baseURL:    config.BaseURL,
		model:      config.Model,
		imageModel: config.ImageModel,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	MaxOutputTokens    int      `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// geminiResponse is the generateContent response body.
type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Complete sends a text-only request and returns the completion text.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.generate(ctx, req, nil)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// CompleteMultimodal requests text plus image output. Zero returned
// images is not an error; callers inspect the response.
func (c *GeminiClient) CompleteMultimodal(ctx context.Context, req Request) (*MultimodalResponse, error) {
	if req.Model == "" {
		req.Model = c.imageModel
	}
	return c.generate(ctx, req, []string{"TEXT", "IMAGE"})
}

func (c *GeminiClient) generate(ctx context.Context, req Request, modalities []string) (*MultimodalResponse, error) {
	// Auto-apply timeout if the context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	c.logger.Debug("gemini generate",
		zap.String("model", model),
		zap.String("session_id", req.SessionID),
		zap.Int("prompt_len", len(req.Prompt)),
		zap.Bool("multimodal", modalities != nil))

	// Rate limiting: keep a minimum gap between requests.
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:        1.0,
			MaxOutputTokens:    32768,
			ResponseModalities: modalities,
		},
	}
	if req.System != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry loop for rate limits.
	maxRetries := 3
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("request failed: %w", ctx.Err())
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var geminiResp geminiResponse
		if err := json.Unmarshal(body, &geminiResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if geminiResp.Error != nil {
			return nil, fmt.Errorf("API error: %s", geminiResp.Error.Message)
		}
		if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no completion returned")
		}

		out := &MultimodalResponse{}
		var text strings.Builder
		for _, part := range geminiResp.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.InlineData != nil {
				out.Images = append(out.Images, Image{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				})
			}
		}
		out.Text = strings.TrimSpace(text.String())

		c.logger.Debug("gemini generate completed",
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Int("text_len", len(out.Text)),
			zap.Int("images", len(out.Images)))
		return out, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// SetModel changes the default text model.
func (c *GeminiClient) SetModel(model string) { c.model = model }

// GetModel returns the default text model.
func (c *GeminiClient) GetModel() string { return c.model }
