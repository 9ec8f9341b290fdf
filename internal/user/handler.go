package user

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lukmanhakim/user-portal/internal/storage"
	"github.com/lukmanhakim/user-portal/internal/transport"
	"github.com/lukmanhakim/user-portal/pkg/logger"
)

const (
	maxUploadSize         = 10 << 20
	temporaryImageBaseURL = "https://robohash.org/"
	emailSentMessage      = "An email with a new password was sent to: "
	userDeletedMessage    = "User deleted successfully"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Images  *storage.ImageStore
}

func NewHandler(svc ServiceAPI, images *storage.ImageStore) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
		Images:      images,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	dto, image, err := h.parseUserForm(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	u, err := h.Service.Create(r.Context(), dto, image)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	dto, image, err := h.parseUserForm(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	currentUsername := r.FormValue("currentUsername")

	u, err := h.Service.Update(r.Context(), currentUsername, dto, image)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewUserResponse(u))
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	u, err := h.Service.FindByUsername(r.Context(), username)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewUserResponse(u))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewUserResponses(users))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.Service.ResetPassword(r.Context(), email); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.NewHTTPResponse(http.StatusOK, emailSentMessage+email))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.NewHTTPResponse(http.StatusOK, userDeletedMessage))
}

func (h *Handler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	username := r.FormValue("username")

	image, err := h.formImage(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if image == nil {
		h.WriteError(w, http.StatusBadRequest, "profileImage is required")
		return
	}

	u, err := h.Service.UpdateProfileImage(r.Context(), username, image)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewUserResponse(u))
}

// ProfileImage streams the stored image for a username.
func (h *Handler) ProfileImage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	f, err := h.Images.Open(username)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "no profile image for user")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, f); err != nil {
		h.Logger.Error("streaming profile image failed", "username", username, "error", err)
	}
}

// TemporaryProfileImage proxies the placeholder image used before a user
// uploads their own.
func (h *Handler) TemporaryProfileImage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := http.Get(temporaryImageBaseURL + username)
	if err != nil {
		h.WriteError(w, http.StatusBadGateway, "temporary image source unavailable")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.Logger.Error("streaming temporary image failed", "username", username, "error", err)
	}
}

func (h *Handler) parseUserForm(r *http.Request) (CreateUserDTO, *ImageUpload, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		// Plain form posts without a file are still acceptable.
		if err := r.ParseForm(); err != nil {
			return CreateUserDTO{}, nil, err
		}
	}

	dto := CreateUserDTO{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Role:      r.FormValue("role"),
		IsActive:  parseBool(r.FormValue("isActive")),
		IsLocked:  !parseBool(r.FormValue("isNonLocked")),
	}

	image, err := h.formImage(r)
	if err != nil {
		return CreateUserDTO{}, nil, err
	}
	return dto, image, nil
}

func (h *Handler) formImage(r *http.Request) (*ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("profileImage")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	return &ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}, nil
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
