// Package dto defines the wire contract of the automation API. Field names
// here are consumed verbatim by n8n workflows and chat gateways; renaming one
// is a breaking change.
package dto

import (
	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/notify"
	"freightops/internal/domain/reporting"
	"freightops/internal/domain/shipment"
)

// ErrorEnvelope is the failure shape produced by the error middleware.
// ChannelMessage always starts with the failure marker so chat relays can
// forward it verbatim.
type ErrorEnvelope struct {
	Success        bool           `json:"success"`
	Code           string         `json:"code"`
	Message        string         `json:"message"`
	Details        map[string]any `json:"details,omitempty"`
	ChannelMessage string         `json:"channel_message"`
}

// CreateShipmentResponse confirms a registered LOT.
type CreateShipmentResponse struct {
	Success        bool   `json:"success"`
	ShipmentID     string `json:"shipment_id"`
	Message        string `json:"message"`
	ChannelMessage string `json:"channel_message"`
}

// AddCostsResponse returns the full stored costs row.
type AddCostsResponse struct {
	Success        bool                  `json:"success"`
	Costs          *ledger.ShipmentCosts `json:"costs"`
	ChannelMessage string                `json:"channel_message"`
}

// AddRevenueResponse returns the computed profit breakdown.
type AddRevenueResponse struct {
	Success        bool       `json:"success"`
	ProfitData     ProfitData `json:"profit_data"`
	ChannelMessage string     `json:"channel_message"`
}

// UpdateStatusResponse returns the updated shipment row.
type UpdateStatusResponse struct {
	Success        bool               `json:"success"`
	Shipment       *shipment.Shipment `json:"shipment"`
	ChannelMessage string             `json:"channel_message"`
}

// RecordPaymentResponse confirms a recorded payment and the resulting
// supplier balance.
type RecordPaymentResponse struct {
	Success          bool        `json:"success"`
	PaymentID        string      `json:"payment_id"`
	PaymentNumber    string      `json:"payment_number"`
	AmountZar        types.Money `json:"amount_zar"`
	CommissionEarned types.Money `json:"commission_earned"`
	SupplierBalance  types.Money `json:"supplier_balance"`
	ChannelMessage   string      `json:"channel_message"`
}

// QueryShipmentsResponse carries either a filtered list or, when the query
// named a LOT, a single detail.
type QueryShipmentsResponse struct {
	Success        bool                      `json:"success"`
	Shipments      []*shipment.Shipment      `json:"shipments,omitempty"`
	Count          int                       `json:"count"`
	Detail         *reporting.ShipmentDetail `json:"detail,omitempty"`
	ChannelMessage string                    `json:"channel_message"`
}

// SupplierBalanceResponse is the supplier balance report.
type SupplierBalanceResponse struct {
	Success        bool                       `json:"success"`
	Supplier       *reporting.SupplierBalance `json:"supplier"`
	ChannelMessage string                     `json:"channel_message"`
}

// CashflowResponse is the weekly payment projection.
type CashflowResponse struct {
	Success        bool                     `json:"success"`
	Weeks          []reporting.CashflowWeek `json:"weeks"`
	ChannelMessage string                   `json:"channel_message"`
}

// NotifyResponse reports the per-recipient fan-out outcome.
type NotifyResponse struct {
	Success        bool                     `json:"success"`
	SentCount      int                      `json:"sent_count"`
	FailedCount    int                      `json:"failed_count"`
	Results        []notify.RecipientResult `json:"results"`
	ChannelMessage string                   `json:"channel_message"`
}
