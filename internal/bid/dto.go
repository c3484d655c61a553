package bid

import "errors"

type SubmitBidDTO struct {
	RFQID        int64  `json:"rfq_id"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	LeadTimeDays int    `json:"lead_time_days"`
	Note         string `json:"note"`
}

func (dto SubmitBidDTO) Validate() error {
	if dto.RFQID <= 0 {
		return errors.New("rfq_id is required")
	}
	if dto.AmountCents <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if dto.LeadTimeDays < 0 {
		return errors.New("lead time cannot be negative")
	}
	if len(dto.Note) > 2000 {
		return errors.New("note must be less than 2000 characters")
	}
	return nil
}
