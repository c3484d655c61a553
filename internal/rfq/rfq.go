package rfq

import (
	"time"

	rfqDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/rfq"
)

const (
	StatusOpen    = "open"
	StatusClosed  = "closed"
	StatusAwarded = "awarded"
)

type RFQ struct {
	ID          int64      `json:"id"`
	BuyerID     int64      `json:"buyer_id"`
	CompanyID   int64      `json:"company_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Quantity    int64      `json:"quantity"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *RFQ) IsOpen() bool {
	return r.Status == StatusOpen
}

func (r *RFQ) Close() {
	r.Status = StatusClosed
	r.UpdatedAt = time.Now()
}

func ToDataModel(r *RFQ) *rfqDatamodel.RFQ {
	return &rfqDatamodel.RFQ{
		ID:          r.ID,
		BuyerID:     r.BuyerID,
		CompanyID:   r.CompanyID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Deadline:    r.Deadline,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModel(r *rfqDatamodel.RFQ) *RFQ {
	return &RFQ{
		ID:          r.ID,
		BuyerID:     r.BuyerID,
		CompanyID:   r.CompanyID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Deadline:    r.Deadline,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModelSlice(rfqs []*rfqDatamodel.RFQ) []*RFQ {
	result := make([]*RFQ, len(rfqs))
	for i, r := range rfqs {
		result[i] = FromDataModel(r)
	}
	return result
}
