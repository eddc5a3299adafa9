package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/http/mapper"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
	sharederrors "github.com/Varun-2538/FoodieExpress/internal/shared/errors"
)

// ServiceRole is the role allowed to change order status.
const ServiceRole = "service_role"

// IdempotencyKeyHeader carries the client's retry key on order creation.
const IdempotencyKeyHeader = "Idempotency-Key"

// envelope is the success body shape the web client expects.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// OrderHandler exposes the order builder over HTTP.
type OrderHandler struct {
	service   ports.Service
	statuses  ports.StatusOrchestrator
	responder *sharederrors.ChainedResponder
}

func NewOrderHandler(service ports.Service, statuses ports.StatusOrchestrator, responder *sharederrors.ChainedResponder) *OrderHandler {
	return &OrderHandler{service: service, statuses: statuses, responder: responder}
}

// NewResponder returns the problem responder that understands ordering errors.
func NewResponder(baseURI string) *sharederrors.ChainedResponder {
	return sharederrors.NewChainedResponder(baseURI, MapOrderingError)
}

// Register mounts the order routes on api; every route requires authn.
func (h *OrderHandler) Register(api gin.IRouter, authn gin.HandlerFunc) {
	orders := api.Group("/orders", authn)
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.PATCH("/:id/status", RequireRole(h.responder, ServiceRole), h.UpdateStatus)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	principal, ok := PrincipalFrom(c)
	if !ok {
		h.responder.Unauthorized(c, ports.ErrMissingCredential.Error())
		return
	}
	var body mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.responder.BadRequest(c, "request body is not a valid order: "+err.Error())
		return
	}
	order, err := h.service.CreateOrder(c.Request.Context(), ports.PlaceOrderInput{
		UserID:         principal.UserID,
		Request:        mapper.ToDomainOrderRequest(body),
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, envelope{Success: true, Data: mapper.FromDomainOrder(order), Message: "Order created successfully"})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := PrincipalFrom(c)
	if !ok {
		h.responder.Unauthorized(c, ports.ErrMissingCredential.Error())
		return
	}
	orders, err := h.service.ListOrdersForUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: mapper.FromDomainOrders(orders)})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := PrincipalFrom(c)
	if !ok {
		h.responder.Unauthorized(c, ports.ErrMissingCredential.Error())
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"), principal.UserID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: mapper.FromDomainOrder(order)})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var body mapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.responder.BadRequest(c, "request body is not a valid status update: "+err.Error())
		return
	}
	status, err := domain.ParseStatus(body.Status)
	if err != nil {
		h.responder.Respond(c, sharederrors.ErrValidation.
			WithDetail(err.Error()).
			WithExtension("allowed", domain.Statuses()))
		return
	}
	order, err := h.statuses.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: mapper.FromDomainOrder(order), Message: "Order status updated"})
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Health reports liveness without touching any dependency.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Status:    "ok",
		Message:   "FoodieExpress API is running",
		Timestamp: time.Now().UTC(),
	})
}
