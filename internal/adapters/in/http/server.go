// Package http exposes the workflow engine to the chat gateway over a small
// JSON API. It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests on behalf of the chat gateway.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrdersHandler      queries.GetOrdersForUserQueryHandler
	getDailyReportHandler queries.GetDailyReportQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrdersHandler queries.GetOrdersForUserQueryHandler,
	getDailyReportHandler queries.GetDailyReportQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		changeStatusHandler:   changeStatusHandler,
		getOrdersHandler:      getOrdersHandler,
		getDailyReportHandler: getDailyReportHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.GET("/orders", s.GetOrders)
	api.GET("/reports/daily", s.GetDailyReport)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := req.toCommand()
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var dup *commands.DuplicateOrderError
		if errors.As(err, &dup) {
			resp := DuplicateOrderResponse{
				Code:    http.StatusConflict,
				Message: "An order for this phone and delivery date already exists",
			}
			if dup.Existing != nil {
				existing := orderFromAggregate(dup.Existing)
				resp.Existing = &existing
			}
			return ctx.JSON(http.StatusConflict, resp)
		}
		return errorFromDomain(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(aggregate))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// through the workflow on behalf of a chat user.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := req.toCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid status change: "+err.Error())
	}

	aggregate, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorFromDomain(ctx, err, "Failed to change order status")
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(aggregate))
}

// GetOrders handles GET /api/v1/orders - lists orders visible to a chat user.
func (s *Server) GetOrders(ctx echo.Context) error {
	requesterID, err := kernel.UUIDFromString(ctx.QueryParam("requester_id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid requester id")
	}

	filter := queries.OrderFilter(ctx.QueryParam("filter"))
	if filter == "" {
		filter = queries.FilterAll
	}

	query, err := queries.NewGetOrdersForUserQuery(requesterID, filter)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid listing request: "+err.Error())
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorFromDomain(ctx, err, "Failed to retrieve orders")
	}

	response := make([]OrderListItem, len(rows))
	for i, row := range rows {
		response[i] = orderListItemFromRow(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDailyReport handles GET /api/v1/reports/daily - aggregates one delivery day.
func (s *Server) GetDailyReport(ctx echo.Context) error {
	date, err := kernel.NewDate(ctx.QueryParam("date"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetDailyReportQuery(date)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid report request: "+err.Error())
	}

	report, err := s.getDailyReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorFromDomain(ctx, err, "Failed to build daily report")
	}

	countByStatus := make(map[string]int, len(report.CountByStatus))
	for status, count := range report.CountByStatus {
		countByStatus[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, DailyReportResponse{
		Date:            report.Date.String(),
		TotalOrders:     report.TotalOrders,
		CountByStatus:   countByStatus,
		TotalAmount:     report.TotalAmount,
		DeliveredAmount: report.DeliveredAmount,
		ConversionRate:  report.ConversionRate,
	})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// errorFromDomain maps application errors onto HTTP status codes.
func errorFromDomain(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrPermissionDenied):
		return errorJSON(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, fallback)
	}
}
