package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API administrativa
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de sincronização
	ErrSyncAlreadyRunning = "SYNC_001" // Job já em execução
	ErrUnsupportedSync    = "SYNC_002" // Combinação plataforma/escopo não suportada
	ErrAccountNotFound    = "SYNC_003" // Conta conectada não encontrada
	ErrPlatformAuth       = "SYNC_004" // Credencial da plataforma ausente ou inválida
	ErrAccountSyncing     = "SYNC_005" // Conta já está sincronizando

	// Erros de leads
	ErrLeadNotFound = "LEAD_001" // Lead não encontrado

	// Erros de roteamento
	ErrRouteNotFound    = "ROUTE_001" // Rota inexistente
	ErrMethodNotAllowed = "ROUTE_002" // Método não suportado pela rota

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrSyncAlreadyRunning:    http.StatusConflict,
	ErrUnsupportedSync:       http.StatusBadRequest,
	ErrAccountNotFound:       http.StatusNotFound,
	ErrPlatformAuth:          http.StatusBadGateway,
	ErrAccountSyncing:        http.StatusConflict,
	ErrLeadNotFound:          http.StatusNotFound,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
