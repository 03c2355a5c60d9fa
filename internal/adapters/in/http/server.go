package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "orders/docs/swagger"
)

// Use case handlers the server depends on.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	ListOrdersByStatusHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersByStatusQuery) ([]queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
)

// Server exposes the order use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler CreateOrderHandler
	updateOrderHandler UpdateOrderHandler

	// Query handlers
	getOrderHandler           GetOrderHandler
	listOrdersByStatusHandler ListOrdersByStatusHandler
	listOrdersHandler         ListOrdersHandler

	now    func() time.Time
	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderHandler UpdateOrderHandler,
	getOrderHandler GetOrderHandler,
	listOrdersByStatusHandler ListOrdersByStatusHandler,
	listOrdersHandler ListOrdersHandler,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderHandler:        updateOrderHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersByStatusHandler: listOrdersByStatusHandler,
		listOrdersHandler:         listOrdersHandler,
		now:                       time.Now,
		logger:                    logger,
	}
}

// Register mounts the API, health and documentation routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	orders := e.Group("/api/v1/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/status/:status", s.ListOrdersByStatus)
	orders.GET("/:orderNumber", s.GetOrder)
	orders.PUT("/:orderNumber", s.UpdateOrder)
}

// Health handles GET /health.
//
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "Healthy"
// @Router /health [get]
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places a new order.
//
// @Summary Place an order
// @Description Prices the requested items from the product catalog, allocates an order number and stores the order. Client supplied prices are ignored.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order to place"
// @Success 201 {object} queries.OrderView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /api/v1/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := decodeLenient(ctx, &req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, queries.NewOrderView(created, s.now()))
}

// UpdateOrder handles PUT /api/v1/orders/{orderNumber} - patches an order.
//
// @Summary Update an order
// @Description Applies a partial update. Replacing items re-prices the order; a status change goes through the order state machine.
// @Tags orders
// @Accept json
// @Produce json
// @Param orderNumber path string true "Order number" example(ORD-2410-000042)
// @Param patch body UpdateOrderRequest true "Fields to change"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Illegal transition or version conflict"
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/orders/{orderNumber} [put]
func (s *Server) UpdateOrder(ctx echo.Context) error {
	var req UpdateOrderRequest
	if err := decodeStrict(ctx, &req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := req.toCommand(ctx.Param("orderNumber"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.NewOrderView(updated, s.now()))
}

// GetOrder handles GET /api/v1/orders/{orderNumber}.
//
// @Summary Get an order
// @Description Returns the order, or only the requested fields when fields is given.
// @Tags orders
// @Produce json
// @Param orderNumber path string true "Order number" example(ORD-2410-000042)
// @Param fields query string false "Comma separated field names" example(orderNumber,status,totalAmount)
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/orders/{orderNumber} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderNumber"), splitFields(ctx.QueryParam("fields")))
	if err != nil {
		return s.respondError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if resp.Projection != nil {
		return ctx.JSON(http.StatusOK, resp.Projection)
	}
	return ctx.JSON(http.StatusOK, resp.Order)
}

// ListOrdersByStatus handles GET /api/v1/orders/status/{status}.
//
// @Summary List orders by status
// @Description Newest orders first. An empty list is a valid answer.
// @Tags orders
// @Produce json
// @Param status path string true "Order status" Enums(PENDING,CONFIRMED,PROCESSING,SHIPPED,DELIVERED,CANCELLED,REFUNDED)
// @Success 200 {array} queries.OrderView
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/orders/status/{status} [get]
func (s *Server) ListOrdersByStatus(ctx echo.Context) error {
	query, err := queries.NewListOrdersByStatusQuery(ctx.Param("status"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.listOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// ListOrders handles GET /api/v1/orders - pages through all orders.
//
// @Summary List orders
// @Description Newest orders first.
// @Tags orders
// @Produce json
// @Param limit query int false "Page size, 1 to 200" default(50)
// @Param offset query int false "Orders to skip" default(0)
// @Success 200 {object} queries.ListOrdersQueryResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/orders [get]
func (s *Server) ListOrders(ctx echo.Context) error {
	var limit, offset int
	if err := echo.QueryParamsBinder(ctx).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("query parameters", err))
	}

	query, err := queries.NewListOrdersQuery(limit, offset)
	if err != nil {
		return s.respondError(ctx, err)
	}

	resp, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

func splitFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
