package utils

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// maxResponseBody limita o corpo lido de APIs externas
const maxResponseBody = 32 << 20

// DoRequest executa a requisição e devolve status e corpo; erros de rede retornam status 0
func DoRequest(client *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "request %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "read response body")
	}

	return resp.StatusCode, data, nil
}
