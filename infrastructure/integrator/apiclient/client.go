package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/metrics"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

// ErrorParser extrai a mensagem de erro do corpo de resposta de uma plataforma
type ErrorParser func(body []byte) string

// ErrorClassifier permite trocar o FetchError por um erro mais específico (ex.: AuthError)
type ErrorClassifier func(fetchErr *domain.FetchError, body []byte) error

// Client executa requisições de uma plataforma, contabilizando status e convertendo
// respostas não-2xx em domain.FetchError.
type Client struct {
	Platform   domain.Platform
	HTTPClient *http.Client
	ParseError ErrorParser
	Classify   ErrorClassifier
}

func New(platform domain.Platform, timeout time.Duration, parseError ErrorParser) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		Platform:   platform,
		HTTPClient: &http.Client{Timeout: timeout},
		ParseError: parseError,
	}
}

// Do executa a requisição e retorna o corpo de respostas 2xx
func (c *Client) Do(req *http.Request, operation string) ([]byte, error) {
	status, body, err := utils.DoRequest(c.HTTPClient, req)
	metrics.ObservePlatformRequest(c.Platform.String(), status)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":  c.Platform,
			"operation": operation,
		}).WithError(err).Error("Erro ao fazer a requisição")
		return nil, errors.Wrapf(err, "%s", operation)
	}

	if status < 200 || status >= 300 {
		fetchErr := c.FetchError(operation, status, body)
		if c.Classify != nil {
			return nil, c.Classify(fetchErr, body)
		}
		return nil, fetchErr
	}

	return body, nil
}

// FetchError monta o erro com a mensagem da plataforma ou, na falta dela, o corpo bruto
func (c *Client) FetchError(operation string, status int, body []byte) *domain.FetchError {
	message := ""
	if c.ParseError != nil {
		message = c.ParseError(body)
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &domain.FetchError{
		Platform:  c.Platform,
		Operation: operation,
		Status:    status,
		Message:   message,
	}
}

func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string, operation string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, rawURL, nil, headers, operation)
}

func (c *Client) Post(ctx context.Context, rawURL string, payload any, headers map[string]string, operation string) ([]byte, error) {
	data, err := utils.JSON.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode request body")
	}
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"
	return c.send(ctx, http.MethodPost, rawURL, bytes.NewReader(data), headers, operation)
}

func (c *Client) send(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.Do(req, operation)
}

// Decode interpreta o corpo como JSON preservando números; corpo vazio ou inválido vira objeto vazio
func Decode(body []byte) map[string]any {
	out := map[string]any{}
	if len(strings.TrimSpace(string(body))) == 0 {
		return out
	}
	if err := utils.JSON.Unmarshal(body, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// Rows converte uma lista JSON em linhas brutas, descartando itens que não são objetos
func Rows(value any) []domain.RawRow {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	rows := make([]domain.RawRow, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, domain.RawRow(m))
		}
	}
	return rows
}

// DecodeList interpreta o corpo como lista JSON; qualquer outra coisa vira lista vazia
func DecodeList(body []byte) []any {
	var out []any
	if err := utils.JSON.Unmarshal(body, &out); err != nil {
		return nil
	}
	return out
}

// NestedMessage lê error.message (ou message) de um envelope de erro JSON
func NestedMessage(body []byte) string {
	payload := Decode(body)
	if nested, ok := payload["error"].(map[string]any); ok {
		if message, ok := nested["message"].(string); ok && message != "" {
			return message
		}
	}
	message, _ := payload["message"].(string)
	return message
}
