package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !service.Enabled() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Autenticação desabilitada neste ambiente", nil)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			handleLoginError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, LoginResponse{Token: token})
	}
}

// GetMe devolve o perfil do usuário do token, ou o anônimo quando a autenticação está desligada
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if !service.Enabled() {
			writeJSON(w, r, http.StatusOK, map[string]string{
				"name": userClaims.UserName,
				"role": userClaims.UserRole,
			})
			return
		}

		user, err := service.GetUserProfile(userClaims.UserEmail)
		if err != nil {
			if errors.Is(err, authenticating.ErrUserNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("Erro ao obter perfil")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao obter dados do usuário", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser()
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar usuários")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar usuários", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, users)
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		// Usuário inexistente responde como senha errada
		if authErr.Code == apiErrors.ErrUserNotFound {
			apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
			return
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials), errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "Usuário desativado", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}
