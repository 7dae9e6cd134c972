package car

import (
	"net/http"
	"strconv"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler 车辆与归属相关的 HTTP 入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.add)
	r.Get("/", h.ownedBy)
	r.Get("/{vin}", h.get)
	r.Post("/{vin}/owner", h.linkOwner)
	return r
}

type addCarRequest struct {
	VIN     string `json:"vin"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    string `json:"year"`
	OwnerID *uint  `json:"owner_id,omitempty"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addCarRequest
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

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "vin"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, c)
}

// ownedBy GET /cars?owner_id=N 客户名下车辆列表。
func (h *Handler) ownedBy(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseUint(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "owner_id must be an integer"))
		return
	}
	cars, err := h.svc.OwnedBy(r.Context(), uint(ownerID))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if cars == nil {
		cars = []Car{}
	}
	httpx.RespondJSON(w, http.StatusOK, cars)
}

type linkOwnerRequest struct {
	CustomerID uint `json:"customer_id"`
}

func (h *Handler) linkOwner(w http.ResponseWriter, r *http.Request) {
	var req linkOwnerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeInvalidField, "%v", err))
		return
	}
	o, err := h.svc.LinkOwner(r.Context(), req.CustomerID, chi.URLParam(r, "vin"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, o)
}
