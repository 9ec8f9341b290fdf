package auth

import (
	"encoding/json"
	"net/http"

	"github.com/lukmanhakim/user-portal/internal/transport"
	"github.com/lukmanhakim/user-portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Login authenticates the caller and hands the token back in the Jwt-Token
// response header. The body carries the user record only.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set(JWTTokenHeader, token)
	h.WriteJSON(w, http.StatusOK, NewUserView(u))
}
