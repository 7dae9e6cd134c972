package mechanic

import (
	"net/http"
	"strconv"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler 技师相关的 HTTP 入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.add)
	r.Get("/{id}", h.get)
	return r
}

type addMechanicRequest struct {
	FName      string `json:"fname"`
	LName      string `json:"lname"`
	Experience int    `json:"experience"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addMechanicRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeInvalidField, "%v", err))
		return
	}
	m, err := h.svc.Add(r.Context(), AddInput(req))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, m)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "mechanic id must be an integer"))
		return
	}
	m, err := h.svc.Get(r.Context(), uint(id))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, m)
}
