package request

import (
	"net/http"
	"strconv"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler 工单生命周期的 HTTP 入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.open)
	r.Get("/{rid}", h.get)
	r.Post("/{rid}/close", h.close)
	return r
}

type openRequest struct {
	CustomerID uint   `json:"customer_id"`
	CarVIN     string `json:"car_vin"`
	Odometer   int    `json:"odometer"`
	Complaint  string `json:"complaint"`
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeInvalidField, "%v", err))
		return
	}
	sr, err := h.svc.Open(r.Context(), OpenInput(req))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, sr)
}

type requestView struct {
	*ServiceRequest
	Status Status `json:"status"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rid, err := strconv.ParseUint(chi.URLParam(r, "rid"), 10, 64)
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "rid must be an integer"))
		return
	}
	sr, err := h.svc.Get(r.Context(), uint(rid))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	st, err := h.svc.StatusOf(r.Context(), uint(rid))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, requestView{ServiceRequest: sr, Status: st})
}

type closeRequest struct {
	MechanicID int    `json:"mechanic_id"`
	Comment    string `json:"comment"`
	Bill       int    `json:"bill"`
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	rid, err := strconv.ParseUint(chi.URLParam(r, "rid"), 10, 64)
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "rid must be an integer"))
		return
	}
	var req closeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeInvalidField, "%v", err))
		return
	}
	cr, err := h.svc.Close(r.Context(), CloseInput{
		RID:        uint(rid),
		MechanicID: req.MechanicID,
		Comment:    req.Comment,
		Bill:       req.Bill,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, cr)
}
