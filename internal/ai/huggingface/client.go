package huggingface

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/resume-extractor/internal/ai"
	"go.uber.org/zap"
)

const (
	provider       = "huggingface"
	apiURL         = "https://api-inference.huggingface.co/models"
	defaultModel   = "HuggingFaceH4/zephyr-7b-beta"
	defaultTimeout = 60 * time.Second
	userAgent      = "spigell/resume-extractor"
)

// Client calls the Hugging Face text generation inference API.
type Client struct {
	token      string
	model      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client for the given model. Empty model and timeout fall back to defaults.
func New(logger *zap.Logger, token, model string, timeout time.Duration) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("hugging face token is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		model:  model,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
	}, nil
}

// Generate runs text generation for the prompt. Only the generated continuation is returned.
func (c *Client) Generate(ctx context.Context, prompt string, params ai.Params) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", &ai.BackendError{Provider: provider, Err: errors.New("prompt must not be empty")}
	}

	payload := generationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxNewTokens:   params.MaxTokens,
			Temperature:    params.Temperature,
			DoSample:       params.Sample,
			ReturnFullText: false,
		},
	}

	output, err := c.postGeneration(ctx, c.modelURL(), payload)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &ai.BackendError{Provider: provider, Err: err}
	}

	return output, nil
}

func (c *Client) Provider() string { return provider }

func (c *Client) Model() string { return c.model }

func (c *Client) modelURL() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.APIURL, "/"), c.model)
}
