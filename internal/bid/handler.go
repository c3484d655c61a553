package bid

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bidquo/rfq-marketplace/internal/auth"
	"github.com/bidquo/rfq-marketplace/internal/transport"
	"github.com/bidquo/rfq-marketplace/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SubmitBid(supplierID int64, companyID *int64, dto SubmitBidDTO) (*Bid, error)
	ListBidsForRFQ(actorID int64, actorRole string, rfqID int64, limit, offset int) ([]*Bid, error)
	ListMyBids(supplierID int64, limit, offset int) ([]*Bid, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitBidDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.SubmitBid(user.ID, user.CompanyID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListBidsForRFQ handles GET /rfqs/{id}/bids
func (h *Handler) ListBidsForRFQ(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rfqID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid RFQ ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	bids, err := h.Service.ListBidsForRFQ(user.ID, user.Role, rfqID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bids": bids,
	})
}

func (h *Handler) ListMyBids(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	bids, err := h.Service.ListMyBids(user.ID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bids": bids,
	})
}
