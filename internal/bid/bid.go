package bid

import (
	"time"

	bidDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/bid"
)

type Bid struct {
	ID           int64     `json:"id"`
	RFQID        int64     `json:"rfq_id"`
	SupplierID   int64     `json:"supplier_id"`
	CompanyID    int64     `json:"company_id"`
	AmountCents  int64     `json:"amount_cents"`
	Currency     string    `json:"currency"`
	LeadTimeDays int       `json:"lead_time_days"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDataModel(b *Bid) *bidDatamodel.Bid {
	return &bidDatamodel.Bid{
		ID:           b.ID,
		RFQID:        b.RFQID,
		SupplierID:   b.SupplierID,
		CompanyID:    b.CompanyID,
		AmountCents:  b.AmountCents,
		Currency:     b.Currency,
		LeadTimeDays: b.LeadTimeDays,
		Note:         b.Note,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func FromDataModel(b *bidDatamodel.Bid) *Bid {
	return &Bid{
		ID:           b.ID,
		RFQID:        b.RFQID,
		SupplierID:   b.SupplierID,
		CompanyID:    b.CompanyID,
		AmountCents:  b.AmountCents,
		Currency:     b.Currency,
		LeadTimeDays: b.LeadTimeDays,
		Note:         b.Note,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func FromDataModelSlice(bids []*bidDatamodel.Bid) []*Bid {
	result := make([]*Bid, len(bids))
	for i, b := range bids {
		result[i] = FromDataModel(b)
	}
	return result
}
