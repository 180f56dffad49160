package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros do dashboard
	ErrDashboardUnavailable = "DASH_001" // Banco de dados indisponível

	// Erros de insights
	ErrInsightsNotConfigured    = "INS_001" // Chave da API da IA ausente
	ErrInsightsInsufficientData = "INS_002" // Dados insuficientes para gerar insights
	ErrInsightsGeneration       = "INS_003" // Falha no serviço de geração de texto

	// Erros de exportação
	ErrExportInvalidTable = "EXP_001" // Nome de tabela inválido
	ErrExportTableMissing = "EXP_002" // Tabela inexistente
	ErrExportNoData       = "EXP_003" // Nenhuma linha completa para exportar
	ErrExportFileLocked   = "EXP_004" // Arquivo de saída em uso

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:       http.StatusUnauthorized,
	ErrUserDisabled:             http.StatusForbidden,
	ErrUserNotFound:             http.StatusNotFound,
	ErrInvalidToken:             http.StatusUnauthorized,
	ErrExpiredToken:             http.StatusUnauthorized,
	ErrInsufficientPrivilege:    http.StatusForbidden,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingRequiredData:      http.StatusBadRequest,
	ErrInvalidFormat:            http.StatusBadRequest,
	ErrDashboardUnavailable:     http.StatusServiceUnavailable,
	ErrInsightsNotConfigured:    http.StatusServiceUnavailable,
	ErrInsightsInsufficientData: http.StatusUnprocessableEntity,
	ErrInsightsGeneration:       http.StatusBadGateway,
	ErrExportInvalidTable:       http.StatusBadRequest,
	ErrExportTableMissing:       http.StatusNotFound,
	ErrExportNoData:             http.StatusNotFound,
	ErrExportFileLocked:         http.StatusConflict,
	ErrInternalServer:           http.StatusInternalServerError,
	ErrDatabaseOperation:        http.StatusInternalServerError,
	ErrExternalService:          http.StatusBadGateway,
	ErrCommunication:            http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP do código, 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	WriteErrorWithStatus(w, StatusFor(code), code, message, details)
}

// WriteErrorWithStatus é usado quando o status não segue o mapa do código, como 404 e 405 do roteador
func WriteErrorWithStatus(w http.ResponseWriter, status int, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
