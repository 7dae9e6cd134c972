package report

import (
	"net/http"
	"strconv"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler 报表只读入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/small-recent-bills", h.smallRecentBills)
	r.Get("/car-collectors", h.carCollectors)
	r.Get("/low-mileage-classics", h.lowMileageClassics)
	r.Get("/top-serviced", h.topServiced)
	r.Get("/totals", h.totals)
	return r
}

func (h *Handler) smallRecentBills(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.CustomersWithSmallRecentBill(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CustomerBillRow{}
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) carCollectors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.CarCollectors(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CustomerCarsRow{}
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) lowMileageClassics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.LowMileageClassics(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CarRow{}
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}

// topServiced GET /reports/top-serviced?k=3&open_only=true
func (h *Handler) topServiced(w http.ResponseWriter, r *http.Request) {
	k, err := strconv.Atoi(r.URL.Query().Get("k"))
	if err != nil {
		httpx.RespondError(w, apperr.Validationf(apperr.CodeNotAnInteger, "k must be an integer"))
		return
	}
	openOnly := r.URL.Query().Get("open_only") == "true"
	rows, err := h.svc.TopServicedCars(r.Context(), k, openOnly)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CarServicesRow{}
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.CustomersByTotalBill(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CustomerTotalRow{}
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}
