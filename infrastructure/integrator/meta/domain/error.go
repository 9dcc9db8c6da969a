package metadomain

import "github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string
	Type         string
	Code         int
	ErrorSubcode int
}

// ParseError lê o envelope {"error": {...}} da Graph API
func ParseError(body []byte) *ErrorDetails {
	payload := apiclient.Decode(body)
	raw, ok := payload["error"].(map[string]any)
	if !ok {
		return nil
	}

	details := &ErrorDetails{}
	details.Message, _ = raw["message"].(string)
	details.Type, _ = raw["type"].(string)
	details.Code = intValue(raw["code"])
	details.ErrorSubcode = intValue(raw["error_subcode"])
	return details
}

// ErrorMessage é o apiclient.ErrorParser da Graph API
func ErrorMessage(body []byte) string {
	if details := ParseError(body); details != nil {
		return details.Message
	}
	return ""
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorDetails) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467))
}

func intValue(v any) int {
	switch n := v.(type) {
	case interface{ Int64() (int64, error) }:
		i, _ := n.Int64()
		return int(i)
	case float64:
		return int(n)
	}
	return 0
}
