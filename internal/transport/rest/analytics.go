package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bidquo/rfq-marketplace/internal/transport"
	"github.com/jmoiron/sqlx"
)

// MarketplaceSnapshot is the aggregate served by the analytics export.
// Access requires the export permission, native or delegated.
type MarketplaceSnapshot struct {
	GeneratedAt   time.Time `json:"generated_at"`
	OpenRFQs      int64     `json:"open_rfqs"`
	TotalRFQs     int64     `json:"total_rfqs"`
	TotalBids     int64     `json:"total_bids"`
	ActiveUsers   int64     `json:"active_users"`
	LiveCompanies int64     `json:"live_companies"`
}

type AnalyticsHandler struct {
	*transport.BaseHandler
	db *sqlx.DB
}

func NewAnalyticsHandler(db *sqlx.DB, lg *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		db:          db,
	}
}

// ExportSnapshot handles GET /analytics/export
func (h *AnalyticsHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := MarketplaceSnapshot{GeneratedAt: time.Now()}

	queries := []struct {
		dest  *int64
		query string
	}{
		{&snapshot.OpenRFQs, `SELECT COUNT(*) FROM rfqs WHERE status = 'open'`},
		{&snapshot.TotalRFQs, `SELECT COUNT(*) FROM rfqs`},
		{&snapshot.TotalBids, `SELECT COUNT(*) FROM bids`},
		{&snapshot.ActiveUsers, `SELECT COUNT(*) FROM users WHERE is_active = true`},
		{&snapshot.LiveCompanies, `SELECT COUNT(*) FROM companies WHERE is_active = true`},
	}

	for _, q := range queries {
		if err := h.db.GetContext(r.Context(), q.dest, q.query); err != nil {
			h.Logger.Error("analytics query failed", "error", err, "query", q.query)
			h.WriteError(w, http.StatusServiceUnavailable, "analytics store unreachable")
			return
		}
	}

	h.WriteJSON(w, http.StatusOK, snapshot)
}
