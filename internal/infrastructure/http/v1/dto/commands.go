package dto

import (
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/notify"
	"freightops/internal/domain/payment"
	"freightops/internal/domain/reporting"
	"freightops/internal/domain/shipment"
)

// dateLayout is the wire format for business dates.
const dateLayout = "2006-01-02"

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperror.NewValidation("invalid date for " + field + ", expected YYYY-MM-DD")
	}
	return &t, nil
}

// CreateShipmentRequest registers the first contact with a LOT.
type CreateShipmentRequest struct {
	Source       string `json:"source"`
	LotNumber    string `json:"lot_number"`
	SupplierName string `json:"supplier_name"`
	ClientName   string `json:"client_name"`
	Currency     string `json:"currency"`
	Note         string `json:"note"`
}

func (r *CreateShipmentRequest) Validate() error {
	switch {
	case r.LotNumber == "":
		return apperror.NewMissingField("lot_number")
	case r.SupplierName == "":
		return apperror.NewMissingField("supplier_name")
	case r.ClientName == "":
		return apperror.NewMissingField("client_name")
	}
	return nil
}

func (r *CreateShipmentRequest) ToInput() shipment.CreateInput {
	return shipment.CreateInput{
		LotNumber:    r.LotNumber,
		SupplierName: r.SupplierName,
		ClientName:   r.ClientName,
		Currency:     r.Currency,
		Note:         r.Note,
	}
}

// AddCostsRequest captures the cost side of a shipment. Omitted cost
// components default to zero; an omitted applied rate defaults to spot.
type AddCostsRequest struct {
	Source    string `json:"source"`
	LotNumber string `json:"lot_number"`

	SupplierCost  types.Money `json:"supplier_cost"`
	FreightCost   types.Money `json:"freight_cost"`
	ClearingCost  types.Money `json:"clearing_cost"`
	TransportCost types.Money `json:"transport_cost"`
	BankCharges   types.Money `json:"bank_charges"`

	FxSpotRate    types.Money `json:"fx_spot_rate"`
	FxAppliedRate types.Money `json:"fx_applied_rate"`

	InvoiceNumber string `json:"invoice_number"`
}

func (r *AddCostsRequest) Validate() error {
	if r.LotNumber == "" {
		return apperror.NewMissingField("lot_number")
	}
	return nil
}

func (r *AddCostsRequest) ToInput() ledger.AddCostsInput {
	return ledger.AddCostsInput{
		LotNumber:     r.LotNumber,
		SupplierCost:  r.SupplierCost,
		FreightCost:   r.FreightCost,
		ClearingCost:  r.ClearingCost,
		TransportCost: r.TransportCost,
		BankCharges:   r.BankCharges,
		FxSpotRate:    r.FxSpotRate,
		FxAppliedRate: r.FxAppliedRate,
		InvoiceNumber: r.InvoiceNumber,
	}
}

// AddRevenueRequest posts the client invoice and computes profit.
type AddRevenueRequest struct {
	Source           string      `json:"source"`
	LotNumber        string      `json:"lot_number"`
	ClientInvoiceZar types.Money `json:"client_invoice_zar"`
}

func (r *AddRevenueRequest) Validate() error {
	switch {
	case r.LotNumber == "":
		return apperror.NewMissingField("lot_number")
	case r.ClientInvoiceZar.IsZero():
		return apperror.NewMissingField("client_invoice_zar")
	}
	return nil
}

// ProfitData is the add_revenue response payload.
type ProfitData struct {
	GrossProfitZar    types.Money `json:"gross_profit_zar"`
	FxCommissionZar   types.Money `json:"fx_commission_zar"`
	FxSpreadProfitZar types.Money `json:"fx_spread_profit_zar"`
	NetProfitZar      types.Money `json:"net_profit_zar"`
	ProfitMargin      types.Money `json:"profit_margin"`
}

func NewProfitData(c *ledger.ShipmentCosts) ProfitData {
	return ProfitData{
		GrossProfitZar:    c.GrossProfitZar,
		FxCommissionZar:   c.FxCommissionZar,
		FxSpreadProfitZar: c.FxSpreadProfitZar,
		NetProfitZar:      c.NetProfitZar,
		ProfitMargin:      c.ProfitMargin,
	}
}

// UpdateStatusRequest mutates lifecycle state. Nil fields are untouched.
type UpdateStatusRequest struct {
	Source    string `json:"source"`
	LotNumber string `json:"lot_number"`

	Status *string `json:"status"`

	DocumentSubmitted     *bool  `json:"document_submitted"`
	DocumentSubmittedDate string `json:"document_submitted_date"`
	TelexReleased         *bool  `json:"telex_released"`
	TelexReleasedDate     string `json:"telex_released_date"`
	DeliveryDate          string `json:"delivery_date"`

	Note string `json:"note"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r.LotNumber == "" {
		return apperror.NewMissingField("lot_number")
	}
	if r.Status != nil && !shipment.Status(*r.Status).Valid() {
		return apperror.NewValidation("unknown status: " + *r.Status)
	}
	return nil
}

func (r *UpdateStatusRequest) ToInput() (shipment.UpdateInput, error) {
	in := shipment.UpdateInput{
		LotNumber:         r.LotNumber,
		DocumentSubmitted: r.DocumentSubmitted,
		TelexReleased:     r.TelexReleased,
		Note:              r.Note,
	}
	if r.Status != nil {
		st := shipment.Status(*r.Status)
		in.Status = &st
	}

	var err error
	if in.DocumentSubmittedDate, err = parseDate("document_submitted_date", r.DocumentSubmittedDate); err != nil {
		return in, err
	}
	if in.TelexReleasedDate, err = parseDate("telex_released_date", r.TelexReleasedDate); err != nil {
		return in, err
	}
	if in.DeliveryDate, err = parseDate("delivery_date", r.DeliveryDate); err != nil {
		return in, err
	}
	return in, nil
}

// RecordPaymentRequest records a completed supplier payment.
type RecordPaymentRequest struct {
	Source        string      `json:"source"`
	SupplierName  string      `json:"supplier_name"`
	AmountForeign types.Money `json:"amount_foreign"`
	Currency      string      `json:"currency"`
	FxRate        types.Money `json:"fx_rate"`
	BankAccount   string      `json:"bank_account"`
	LotNumber     string      `json:"lot_number"`
	Date          string      `json:"date"`
}

func (r *RecordPaymentRequest) Validate() error {
	switch {
	case r.SupplierName == "":
		return apperror.NewMissingField("supplier_name")
	case r.AmountForeign.IsZero():
		return apperror.NewMissingField("amount_foreign")
	case r.FxRate.IsZero():
		return apperror.NewMissingField("fx_rate")
	}
	return nil
}

func (r *RecordPaymentRequest) ToInput() (payment.Input, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return payment.Input{}, err
	}
	return payment.Input{
		SupplierName:  r.SupplierName,
		AmountForeign: r.AmountForeign,
		Currency:      r.Currency,
		FxRate:        r.FxRate,
		BankAccount:   r.BankAccount,
		LotNumber:     r.LotNumber,
		Date:          date,
	}, nil
}

// QueryShipmentsRequest is a read-only lookup. With a lot_number it returns
// one shipment with financials; otherwise a filtered list.
type QueryShipmentsRequest struct {
	Source       string `json:"source"`
	LotNumber    string `json:"lot_number"`
	Status       string `json:"status"`
	SupplierName string `json:"supplier_name"`
	Limit        int    `json:"limit"`
}

func (r *QueryShipmentsRequest) ToFilter() reporting.ListFilter {
	return reporting.ListFilter{
		Status:       r.Status,
		SupplierName: r.SupplierName,
		Limit:        r.Limit,
	}
}

// SupplierBalanceRequest asks for one supplier's balance report.
type SupplierBalanceRequest struct {
	Source       string `json:"source"`
	SupplierName string `json:"supplier_name"`
}

func (r *SupplierBalanceRequest) Validate() error {
	if r.SupplierName == "" {
		return apperror.NewMissingField("supplier_name")
	}
	return nil
}

// CashflowRequest asks for the weekly payment projection.
type CashflowRequest struct {
	Source string `json:"source"`
	Weeks  int    `json:"weeks"`
}

// NotifyRequest fans a message out to subscribed recipients.
type NotifyRequest struct {
	Source       string `json:"source"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	LotNumber    string `json:"lot_number"`
	TargetUserID string `json:"target_user_id"`
	Channel      string `json:"channel"`
}

func (r *NotifyRequest) Validate() error {
	switch {
	case r.Type == "":
		return apperror.NewMissingField("type")
	case r.Title == "":
		return apperror.NewMissingField("title")
	case r.Message == "":
		return apperror.NewMissingField("message")
	}
	return nil
}

func (r *NotifyRequest) ToEvent() notify.Event {
	return notify.Event{
		Type:         r.Type,
		Title:        r.Title,
		Message:      r.Message,
		LotNumber:    r.LotNumber,
		TargetUserID: r.TargetUserID,
		Channel:      r.Channel,
	}
}
