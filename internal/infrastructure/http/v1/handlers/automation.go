package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"freightops/internal/core/apperror"
	appctx "freightops/internal/core/context"
	"freightops/internal/domain/automation"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/notify"
	"freightops/internal/domain/payment"
	"freightops/internal/domain/reporting"
	"freightops/internal/domain/shipment"
	"freightops/internal/infrastructure/http/v1/dto"
)

// AutomationHandler exposes the command surface consumed by n8n workflows
// and chat gateways. Every command, read or write, runs through the gateway
// so exactly one automation log row is appended per invocation.
type AutomationHandler struct {
	*BaseHandler

	gateway    *automation.Gateway
	shipments  *shipment.Service
	ledgers    *ledger.Service
	payments   *payment.Service
	reports    *reporting.Service
	dispatcher *notify.Dispatcher
}

func NewAutomationHandler(
	gateway *automation.Gateway,
	shipments *shipment.Service,
	ledgers *ledger.Service,
	payments *payment.Service,
	reports *reporting.Service,
	dispatcher *notify.Dispatcher,
) *AutomationHandler {
	return &AutomationHandler{
		BaseHandler: NewBaseHandler(),
		gateway:     gateway,
		shipments:   shipments,
		ledgers:     ledgers,
		payments:    payments,
		reports:     reports,
		dispatcher:  dispatcher,
	}
}

// run is the shared command shell: it peeks the source channel from the raw
// body, tags the context, and executes fn under the gateway so the audit row
// is written regardless of outcome.
func (h *AutomationHandler) run(c *gin.Context, action string, fn func(ctx context.Context, raw []byte) (any, error)) {
	raw, ok := h.ReadBody(c)
	if !ok {
		return
	}

	source, _ := automation.PeekHints(raw)
	if source == "" {
		source = appctx.GetSource(c.Request.Context())
	}
	ctx := appctx.WithSource(c.Request.Context(), source)

	inv := automation.Invocation{Source: source, Action: action, Request: raw}
	payload, err := h.gateway.Run(ctx, inv, func(ctx context.Context) (any, error) {
		return fn(ctx, raw)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, payload)
}

func bind(raw []byte, obj any) error {
	if err := json.Unmarshal(raw, obj); err != nil {
		return apperror.NewValidation("invalid request body").WithDetail("error", err.Error())
	}
	return nil
}

// CreateShipment handles POST /api/v1/automation/create_shipment.
func (h *AutomationHandler) CreateShipment(c *gin.Context) {
	h.run(c, "create_shipment", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.CreateShipmentRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		res, err := h.shipments.Create(ctx, req.ToInput())
		if err != nil {
			return nil, err
		}

		return dto.CreateShipmentResponse{
			Success:        true,
			ShipmentID:     res.Shipment.ID.String(),
			Message:        fmt.Sprintf("Shipment %s created", res.Shipment.LotNumber),
			ChannelMessage: automation.ShipmentCreatedMessage(res.Shipment, res.Supplier, res.Client),
		}, nil
	})
}

// AddCosts handles POST /api/v1/automation/add_costs.
func (h *AutomationHandler) AddCosts(c *gin.Context) {
	h.run(c, "add_costs", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.AddCostsRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		costs, err := h.ledgers.AddCosts(ctx, req.ToInput())
		if err != nil {
			return nil, err
		}

		return dto.AddCostsResponse{
			Success:        true,
			Costs:          costs,
			ChannelMessage: automation.CostsAddedMessage(req.LotNumber, costs),
		}, nil
	})
}

// AddRevenue handles POST /api/v1/automation/add_revenue.
func (h *AutomationHandler) AddRevenue(c *gin.Context) {
	h.run(c, "add_revenue", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.AddRevenueRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		costs, err := h.ledgers.AddRevenue(ctx, req.LotNumber, req.ClientInvoiceZar)
		if err != nil {
			return nil, err
		}

		return dto.AddRevenueResponse{
			Success:        true,
			ProfitData:     dto.NewProfitData(costs),
			ChannelMessage: automation.RevenueAddedMessage(req.LotNumber, costs),
		}, nil
	})
}

// UpdateStatus handles POST /api/v1/automation/update_status.
func (h *AutomationHandler) UpdateStatus(c *gin.Context) {
	h.run(c, "update_status", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.UpdateStatusRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		in, err := req.ToInput()
		if err != nil {
			return nil, err
		}

		sh, err := h.shipments.Update(ctx, in)
		if err != nil {
			return nil, err
		}

		return dto.UpdateStatusResponse{
			Success:        true,
			Shipment:       sh,
			ChannelMessage: automation.StatusUpdatedMessage(sh),
		}, nil
	})
}

// RecordPayment handles POST /api/v1/automation/record_payment.
func (h *AutomationHandler) RecordPayment(c *gin.Context) {
	h.run(c, "record_payment", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.RecordPaymentRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		in, err := req.ToInput()
		if err != nil {
			return nil, err
		}

		res, err := h.payments.Record(ctx, in)
		if err != nil {
			return nil, err
		}

		return dto.RecordPaymentResponse{
			Success:          true,
			PaymentID:        res.Payment.ID.String(),
			PaymentNumber:    res.Payment.PaymentNumber,
			AmountZar:        res.Payment.AmountZar,
			CommissionEarned: res.Payment.CommissionEarned,
			SupplierBalance:  res.SupplierBalance,
			ChannelMessage:   automation.PaymentRecordedMessage(res.Payment, res.Supplier, res.SupplierBalance),
		}, nil
	})
}

// QueryShipments handles POST /api/v1/automation/query_shipments.
func (h *AutomationHandler) QueryShipments(c *gin.Context) {
	h.run(c, "query_shipments", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.QueryShipmentsRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}

		if req.LotNumber != "" {
			detail, err := h.reports.ShipmentDetail(ctx, req.LotNumber)
			if err != nil {
				return nil, err
			}
			return dto.QueryShipmentsResponse{
				Success:        true,
				Count:          1,
				Detail:         detail,
				ChannelMessage: automation.ShipmentDetailMessage(detail),
			}, nil
		}

		shipments, err := h.reports.ListShipments(ctx, req.ToFilter())
		if err != nil {
			return nil, err
		}
		return dto.QueryShipmentsResponse{
			Success:        true,
			Shipments:      shipments,
			Count:          len(shipments),
			ChannelMessage: automation.ShipmentListMessage(shipments),
		}, nil
	})
}

// QuerySupplierBalance handles POST /api/v1/automation/query_supplier_balance.
func (h *AutomationHandler) QuerySupplierBalance(c *gin.Context) {
	h.run(c, "query_supplier_balance", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.SupplierBalanceRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		report, err := h.reports.SupplierBalance(ctx, req.SupplierName)
		if err != nil {
			return nil, err
		}
		return dto.SupplierBalanceResponse{
			Success:        true,
			Supplier:       report,
			ChannelMessage: automation.SupplierBalanceMessage(report),
		}, nil
	})
}

// CashflowProjection handles POST /api/v1/automation/cashflow_projection.
func (h *AutomationHandler) CashflowProjection(c *gin.Context) {
	h.run(c, "cashflow_projection", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.CashflowRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}

		weeks, err := h.reports.CashflowProjection(ctx, req.Weeks)
		if err != nil {
			return nil, err
		}
		return dto.CashflowResponse{
			Success:        true,
			Weeks:          weeks,
			ChannelMessage: automation.CashflowMessage(weeks),
		}, nil
	})
}

// Notify handles POST /api/v1/automation/notify.
func (h *AutomationHandler) Notify(c *gin.Context) {
	h.run(c, "notify", func(ctx context.Context, raw []byte) (any, error) {
		var req dto.NotifyRequest
		if err := bind(raw, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		res, err := h.dispatcher.Dispatch(ctx, req.ToEvent())
		if err != nil {
			return nil, err
		}
		return dto.NotifyResponse{
			Success:        true,
			SentCount:      res.Sent,
			FailedCount:    res.Failed,
			Results:        res.Results,
			ChannelMessage: fmt.Sprintf("📨 Delivered to %d recipient(s), %d failed", res.Sent, res.Failed),
		}, nil
	})
}
