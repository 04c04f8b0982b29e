// Package http exposes the REST surface over echo. Actor identity arrives in
// the X-Actor-ID and X-Actor-Role headers, resolved upstream by the auth
// collaborator; this layer only parses the verdict, binds request bodies,
// and maps domain errors onto status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Actor identity headers filled in by the upstream auth collaborator.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	assignRiderHandler    commands.AssignRiderCommandHandler
	confirmHandler        commands.ConfirmDeliveryCommandHandler
	rejectHandler         commands.RejectDeliveryCommandHandler
	updateStatusHandler   commands.UpdateDeliveryStatusCommandHandler
	setFeeHandler         commands.SetDeliveryFeeCommandHandler
	generateHandler       commands.GenerateInvoiceCommandHandler

	timelineHandler queries.GetDeliveryTimelineQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	confirmHandler commands.ConfirmDeliveryCommandHandler,
	rejectHandler commands.RejectDeliveryCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	setFeeHandler commands.SetDeliveryFeeCommandHandler,
	generateHandler commands.GenerateInvoiceCommandHandler,
	timelineHandler queries.GetDeliveryTimelineQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler: createDeliveryHandler,
		assignRiderHandler:    assignRiderHandler,
		confirmHandler:        confirmHandler,
		rejectHandler:         rejectHandler,
		updateStatusHandler:   updateStatusHandler,
		setFeeHandler:         setFeeHandler,
		generateHandler:       generateHandler,
		timelineHandler:       timelineHandler,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/deliveries", s.CreateDelivery)
	e.PUT("/deliveries/:id", s.SetDeliveryFee)
	e.PUT("/deliveries/:id/status", s.UpdateDeliveryStatus)
	e.PUT("/deliveries/:id/assign", s.AssignRider)
	e.PUT("/deliveries/:id/confirm", s.ConfirmDelivery)
	e.DELETE("/deliveries/:id/confirm", s.RejectDelivery)
	e.GET("/deliveries/:id/events", s.GetDeliveryTimeline)

	e.POST("/invoices", s.GenerateInvoice)
	e.POST("/invoices/proforma", s.GenerateProformaInvoice)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actorFromHeaders builds the acting identity from the auth headers.
func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-ID", err)
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

type createDeliveryRequest struct {
	BusinessID         string  `json:"business_id"`
	PickupName         string  `json:"pickup_name"`
	PickupPhone        string  `json:"pickup_phone"`
	PickupAddress      string  `json:"pickup_address"`
	DropoffName        string  `json:"dropoff_name"`
	DropoffPhone       string  `json:"dropoff_phone"`
	DropoffAddress     string  `json:"dropoff_address"`
	PackageDescription string  `json:"package_description"`
	DeliveryFee        *string `json:"delivery_fee,omitempty"`
}

// CreateDelivery handles POST /deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req createDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return s.badRequest(ctx, "Invalid business_id: "+err.Error())
	}

	pickup, err := delivery.NewWaypoint(req.PickupName, req.PickupPhone, req.PickupAddress)
	if err != nil {
		return s.writeError(ctx, err)
	}

	dropoff, err := delivery.NewWaypoint(req.DropoffName, req.DropoffPhone, req.DropoffAddress)
	if err != nil {
		return s.writeError(ctx, err)
	}

	fee := decimal.Zero
	if req.DeliveryFee != nil {
		fee, err = decimal.NewFromString(*req.DeliveryFee)
		if err != nil {
			return s.badRequest(ctx, "Invalid delivery_fee: "+err.Error())
		}
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, businessID, pickup, dropoff, req.PackageDescription, fee, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": deliveryID.String()})
}

type assignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// AssignRider handles PUT /deliveries/:id/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	var req assignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid rider_id: "+err.Error())
	}

	cmd, err := commands.NewAssignRiderCommand(deliveryID, riderID, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles PUT /deliveries/:id/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(deliveryID, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.confirmHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type rejectDeliveryRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RejectDelivery handles DELETE /deliveries/:id/confirm.
func (s *Server) RejectDelivery(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	// Body is optional on rejection.
	var req rejectDeliveryRequest
	_ = ctx.Bind(&req)

	cmd, err := commands.NewRejectDeliveryCommand(deliveryID, req.Reason, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.rejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// UpdateDeliveryStatus handles PUT /deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target, req.Note, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type setFeeRequest struct {
	DeliveryFee string `json:"delivery_fee"`
}

// SetDeliveryFee handles PUT /deliveries/:id.
func (s *Server) SetDeliveryFee(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	var req setFeeRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	fee, err := decimal.NewFromString(req.DeliveryFee)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery_fee: "+err.Error())
	}

	cmd, err := commands.NewSetDeliveryFeeCommand(deliveryID, fee, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.setFeeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type generateInvoiceRequest struct {
	BusinessID  string  `json:"business_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	InvoiceType string  `json:"invoice_type,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// GenerateInvoice handles POST /invoices.
func (s *Server) GenerateInvoice(ctx echo.Context) error {
	return s.generateInvoice(ctx, false)
}

// GenerateProformaInvoice handles POST /invoices/proforma.
func (s *Server) GenerateProformaInvoice(ctx echo.Context) error {
	return s.generateInvoice(ctx, true)
}

func (s *Server) generateInvoice(ctx echo.Context, proforma bool) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req generateInvoiceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return s.badRequest(ctx, "Invalid business_id: "+err.Error())
	}

	periodStart, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return s.badRequest(ctx, "Invalid start_date: "+err.Error())
	}

	periodEnd, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return s.badRequest(ctx, "Invalid end_date: "+err.Error())
	}
	// end_date names a calendar day; the period runs through its last
	// instant, so charges created anywhere on that day are billed.
	periodEnd = periodEnd.AddDate(0, 0, 1).Add(-time.Nanosecond)

	invoiceType := billing.InvoiceTypeStandard
	if proforma {
		invoiceType = billing.InvoiceTypeProforma
	} else if req.InvoiceType != "" {
		invoiceType, err = billing.InvoiceTypeFromString(req.InvoiceType)
		if err != nil {
			return s.writeError(ctx, err)
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		due, dueErr := time.Parse("2006-01-02", *req.DueDate)
		if dueErr != nil {
			return s.badRequest(ctx, "Invalid due_date: "+dueErr.Error())
		}
		dueDate = &due
	}

	invoiceID := kernel.NewUUID()
	cmd, err := commands.NewGenerateInvoiceCommand(
		invoiceID, businessID, periodStart, periodEnd, invoiceType, dueDate, req.Notes, by)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.generateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": invoiceID.String()})
}

type deliveryEventResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GetDeliveryTimeline handles GET /deliveries/:id/events.
func (s *Server) GetDeliveryTimeline(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	query, err := queries.NewGetDeliveryTimelineQuery(deliveryID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	events, err := s.timelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]deliveryEventResponse, len(events))
	for i, event := range events {
		response[i] = deliveryEventResponse{
			ID:        event.ID.String(),
			Status:    event.Status.String(),
			Note:      event.Note,
			ActorID:   event.ActorID.String(),
			CreatedAt: event.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain and application errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, queries.ErrNoDeliveryFound):
		code = http.StatusNotFound
	case errors.Is(err, delivery.ErrActorNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, delivery.ErrInvalidStateTransition),
		errors.Is(err, commands.ErrAssignmentConflict),
		errors.Is(err, commands.ErrRiderNotActive),
		errors.Is(err, commands.ErrDeliveryAlreadyBilled):
		code = http.StatusConflict
	case errors.Is(err, commands.ErrNoBillableItems):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrInvoiceNumberExhausted):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
