package dto

import (
	"fmt"

	"github.com/google/uuid"

	"hotelier/internal/domains/invoice/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateInvoiceRequest struct {
	GuestFolioID        string   `json:"guest_folio_id"         validate:"required,uuid"`
	InvoiceToCustomerID string   `json:"invoice_to_customer_id" validate:"required"`
	TaxID               *string  `json:"tax_id"                 validate:"omitempty,max=50"`
	TransactionIDs      []string `json:"transaction_ids"        validate:"required,min=1,dive,uuid"`
}

func (c *CreateInvoiceRequest) ToModel(totalAmount int64, user string) model.Invoice {
	now := timezone.Now()
	id := uuid.NewString()

	return model.Invoice{
		ID:                  id,
		Code:                fmt.Sprintf("INV-%s-%s", now.Format("20060102"), id[:8]),
		GuestFolioID:        c.GuestFolioID,
		InvoiceToCustomerID: c.InvoiceToCustomerID,
		TaxID:               c.TaxID,
		TotalAmount:         totalAmount,
		Metadata:            gModel.NewMetadata(now, user),
	}
}

type VoidInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type InvoiceResponse struct {
	ID                  string  `json:"id"`
	Code                string  `json:"code"`
	GuestFolioID        string  `json:"guest_folio_id"`
	InvoiceToCustomerID string  `json:"invoice_to_customer_id"`
	TaxID               *string `json:"tax_id,omitempty"`
	TotalAmount         int64   `json:"total_amount"`
	IsVoided            bool    `json:"is_voided"`
	VoidReason          *string `json:"void_reason,omitempty"`
	VoidedAt            *string `json:"voided_at,omitempty"`
}

func (r *InvoiceResponse) FromModel(mod model.Invoice) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.GuestFolioID = mod.GuestFolioID
	r.InvoiceToCustomerID = mod.InvoiceToCustomerID
	r.TaxID = mod.TaxID
	r.TotalAmount = mod.TotalAmount
	r.IsVoided = mod.IsVoided
	r.VoidReason = mod.VoidReason

	if mod.VoidedAt != nil {
		formatted := timezone.Format(*mod.VoidedAt, constant.DateFormat)
		r.VoidedAt = &formatted
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}
