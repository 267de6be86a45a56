// Package http contains the inbound HTTP adapter: an echo server translating
// JSON requests into commands and queries.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/queries"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity travels in headers; the body carries only operation data.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-Id"
)

// ErrorResponse is the JSON error envelope for all failure responses.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server translates HTTP requests into application use cases.
type Server struct {
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	claimHandler          commands.ClaimOrderCommandHandler
	claimWithTopupHandler commands.ClaimOrderWithTopupCommandHandler
	completeTopupHandler  commands.CompleteTopupCommandHandler
	batchHandler          commands.BatchChangeStatusCommandHandler

	openOrdersHandler  queries.GetOpenOrdersQueryHandler
	actorOrdersHandler queries.GetActorOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	claimHandler commands.ClaimOrderCommandHandler,
	claimWithTopupHandler commands.ClaimOrderWithTopupCommandHandler,
	completeTopupHandler commands.CompleteTopupCommandHandler,
	batchHandler commands.BatchChangeStatusCommandHandler,
	openOrdersHandler queries.GetOpenOrdersQueryHandler,
	actorOrdersHandler queries.GetActorOrdersQueryHandler,
) *Server {
	return &Server{
		changeStatusHandler:   changeStatusHandler,
		claimHandler:          claimHandler,
		claimWithTopupHandler: claimWithTopupHandler,
		completeTopupHandler:  completeTopupHandler,
		batchHandler:          batchHandler,
		openOrdersHandler:     openOrdersHandler,
		actorOrdersHandler:    actorOrdersHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders", s.GetActorOrders)
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/status-batch", s.BatchChangeStatus)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/claim-with-topup", s.ClaimOrderWithTopup)
	api.POST("/payments/collections/callback", s.PaymentCallback)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type changeStatusRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - applies one
// lifecycle action to one order on behalf of the header actor.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req changeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, "unknown action: "+req.Action)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, action, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - the header agent takes
// exclusive delivery responsibility for the order.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	agentID, err := agentFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, agentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.claimHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type claimWithTopupRequest struct {
	Phone string `json:"phone"`
}

type claimWithTopupResponse struct {
	CorrelationID string `json:"correlation_id"`
	Status        string `json:"status"`
}

// ClaimOrderWithTopup handles POST /api/v1/orders/:id/claim-with-topup -
// starts a mobile money collection for the hold shortfall. The claim itself
// resolves later, when the collection completes.
func (s *Server) ClaimOrderWithTopup(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	agentID, err := agentFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req claimWithTopupRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewClaimOrderWithTopupCommand(orderID, agentID, req.Phone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	correlationID, err := s.claimWithTopupHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, claimWithTopupResponse{
		CorrelationID: correlationID,
		Status:        "pending",
	})
}

type batchChangeStatusRequest struct {
	OrderIDs    []string `json:"order_ids"`
	Action      string   `json:"action"`
	Notes       string   `json:"notes"`
	Parallelism int      `json:"parallelism"`
}

type batchChangeStatusResponse struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   map[string]string `json:"results"`
}

// BatchChangeStatus handles POST /api/v1/orders/status-batch - applies one
// action to many orders on behalf of the header actor. Item failures are
// reported per order id; the response is 200 even when some items fail.
func (s *Server) BatchChangeStatus(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req batchChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, idErr := parseUUID(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, "unknown action: "+req.Action)
	}

	cmd, err := commands.NewBatchChangeStatusCommand(orderIDs, actor, action, req.Notes, req.Parallelism)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.batchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := batchChangeStatusResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Results:   make(map[string]string, len(result.Results)),
	}
	for id, item := range result.Results {
		message := ""
		if item.Err != nil {
			message = item.Err.Error()
		}
		response.Results[id.String()] = message
	}
	return ctx.JSON(http.StatusOK, response)
}

type openOrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	BusinessID  string    `json:"business_id"`
	Subtotal    string    `json:"subtotal"`
	DeliveryFee string    `json:"delivery_fee"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetOpenOrders handles GET /api/v1/orders/open - the board of claimable orders.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.openOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]openOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = openOrderResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			BusinessID:  o.BusinessID.String(),
			Subtotal:    o.Subtotal.Amount().StringFixed(2),
			DeliveryFee: o.DeliveryFee.Amount().StringFixed(2),
			Currency:    o.Subtotal.Currency().String(),
			CreatedAt:   o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

type actorOrderResponse struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   string    `json:"total_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetActorOrders handles GET /api/v1/orders - the header actor's own orders.
func (s *Server) GetActorOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetActorOrdersQuery(actor.Role(), actor.ID())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.actorOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]actorOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = actorOrderResponse{
			ID:            o.ID.String(),
			OrderNumber:   o.OrderNumber,
			Status:        o.Status.String(),
			PaymentStatus: o.PaymentStatus.String(),
			TotalAmount:   o.TotalAmount.Amount().StringFixed(2),
			Currency:      o.TotalAmount.Currency().String(),
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

type paymentCallbackRequest struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// PaymentCallback handles POST /api/v1/payments/collections/callback - the
// provider reports the final state of a collection. Pending is not a final
// state and is rejected.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	var req paymentCallbackRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var successful bool
	switch req.Status {
	case "successful":
		successful = true
	case "failed":
		successful = false
	default:
		return badRequest(ctx, "unknown collection status: "+req.Status)
	}

	cmd, err := commands.NewCompleteTopupCommand(req.ExternalID, successful)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeTopupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func parseUUID(raw string) (kernel.UUID, error) {
	return kernel.UUIDFromString(raw)
}

func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return order.Actor{}, errors.New("missing or invalid " + HeaderActorRole + " header")
	}

	actorID, err := parseUUID(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return order.Actor{}, errors.New("missing or invalid " + HeaderActorID + " header")
	}

	return order.NewActor(role, actorID)
}

// agentFromHeaders requires the header actor to be an agent.
func agentFromHeaders(ctx echo.Context) (kernel.UUID, error) {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}
	if actor.Role() != order.RoleAgent {
		return kernel.UUID{}, errors.New("only agents can claim orders")
	}
	return actor.ID(), nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps use case failures onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrTopupAttemptNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderAlreadyClaimed),
		errors.Is(err, commands.ErrTopupNotRequired),
		errors.Is(err, errs.ErrResourceConflict):
		status = http.StatusConflict
	case errors.Is(err, ports.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, ports.ErrExternalService):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
