package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/config"
)

var (
	ErrMissingAPIKey = errors.New("assistant api key is not configured")
	ErrEmptyAnswer   = errors.New("assistant returned no text")
)

// Client calls the Gemini generateContent endpoint. Each call is a single
// stateless request; no conversation history is kept.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	model      string
	log        zerolog.Logger
}

func NewClient(cfg config.AssistantConfig, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		log:        log,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (r generateResponse) text() string {
	var b strings.Builder
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

// Generate sends the dashboard summary and the user question and returns
// the model's free-text answer.
func (c *Client) Generate(ctx context.Context, contextData, question string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	request := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(contextData, question)}}}},
	}

	var result generateResponse
	var failure errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetBody(request).
		SetResult(&result).
		SetError(&failure).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("call assistant: %w", err)
	}
	if resp.IsError() {
		c.log.Error().
			Int("status_code", resp.StatusCode()).
			Str("status", failure.Error.Status).
			Str("message", failure.Error.Message).
			Msg("assistant endpoint returned error")
		return "", fmt.Errorf("assistant endpoint: %s (status %d)", failure.Error.Message, resp.StatusCode())
	}

	text := result.text()
	if text == "" {
		return "", ErrEmptyAnswer
	}
	return text, nil
}

// BuildPrompt wraps the dashboard summary and the question in the
// assistant instructions.
func BuildPrompt(contextData, question string) string {
	return strings.Join([]string{
		"Contexto: Eres un Asistente de Operaciones y Contratos con IA para el Aeropuerto Internacional Felipe Ángeles (AIFA).",
		"Resumen de Datos del Dashboard: " + strings.TrimSpace(contextData),
		"",
		"Consulta del Usuario: " + strings.TrimSpace(question),
		"",
		"Instrucciones: Proporciona una respuesta concisa, profesional y accionable en ESPAÑOL, adecuada para un gerente de contratos u operaciones.",
		"Mantén la respuesta bajo 50 palabras a menos que se pida un análisis detallado.",
	}, "\n")
}
