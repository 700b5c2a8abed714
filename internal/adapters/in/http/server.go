// Package http is the operator surface: a small echo server for managers to
// inspect orders by status and move them through the delivery lifecycle.
package http

import (
	"errors"
	"net/http"
	"time"

	"sibcargo/internal/core/application/usecases/commands"
	"sibcargo/internal/core/application/usecases/queries"
	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
	"sibcargo/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	updateStatusHandler   commands.UpdateOrderStatusCommandHandler
	ordersByStatusHandler queries.GetOrdersByStatusQueryHandler
}

// NewServer creates the operator HTTP server.
func NewServer(
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	ordersByStatusHandler queries.GetOrdersByStatusQueryHandler,
) *Server {
	return &Server{
		updateStatusHandler:   updateStatusHandler,
		ordersByStatusHandler: ordersByStatusHandler,
	}
}

// RegisterRoutes attaches the server's handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/orders", s.GetOrders)
	e.POST("/api/v1/orders/:id/status", s.UpdateOrderStatus)
}

// errorResponse is the uniform error body for the operator API.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderResponse is the JSON projection of one order.
type orderResponse struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"userId"`
	PickupAt       time.Time `json:"pickupAt"`
	PickupAddress  string    `json:"pickupAddress"`
	DropoffAddress string    `json:"dropoffAddress"`
	WeightKg       float64   `json:"weightKg"`
	DistanceKm     float64   `json:"distanceKm"`
	PriceRub       int64     `json:"priceRub"`
	Status         string    `json:"status"`
	Comment        string    `json:"comment,omitempty"`
	ManagerComment string    `json:"managerComment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// updateStatusRequest is the body of the status update endpoint.
type updateStatusRequest struct {
	Status         string `json:"status"`
	ManagerComment string `json:"managerComment"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrders handles GET /api/v1/orders?status=... - lists orders in a status.
func (s *Server) GetOrders(ctx echo.Context) error {
	status, err := order.StatusFromName(ctx.QueryParam("status"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown order status: " + ctx.QueryParam("status"),
		})
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	orders, err := s.ordersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]orderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderResponse{
			ID:             o.ID.String(),
			UserID:         o.UserID,
			PickupAt:       o.PickupAt,
			PickupAddress:  o.PickupAddress,
			DropoffAddress: o.DropoffAddress,
			WeightKg:       o.WeightKg,
			DistanceKm:     o.DistanceKm,
			PriceRub:       o.PriceRub,
			Status:         o.Status.Name(),
			Comment:        o.Comment,
			ManagerComment: o.ManagerComment,
			CreatedAt:      o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromName(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown order status: " + req.Status,
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, req.ManagerComment)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status update: " + err.Error(),
		})
	}

	if err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, errorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "Failed to update order status: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}
