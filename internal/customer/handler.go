package customer

import (
	"net/http"
	"strconv"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler 客户相关的 HTTP 入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.add)
	r.Get("/", h.byLastName)
	r.Get("/{id}", h.get)
	return r
}

type addCustomerRequest struct {
	FName   string `json:"fname"`
	LName   string `json:"lname"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeInvalidField, "%v", err))
		return
	}
	c, err := h.svc.Add(r.Context(), AddInput(req))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) byLastName(w http.ResponseWriter, r *http.Request) {
	cands, err := h.svc.ByLastName(r.Context(), r.URL.Query().Get("lname"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if cands == nil {
		cands = []Customer{}
	}
	httpx.RespondJSON(w, http.StatusOK, cands)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "customer id must be an integer"))
		return
	}
	c, err := h.svc.Get(r.Context(), uint(id))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, c)
}
