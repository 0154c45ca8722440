package handlers

import (
	request "donation_interface/internal/adapter/http/dto/request"
	response "donation_interface/internal/adapter/http/dto/response"
	"donation_interface/internal/usecase"
	"donation_interface/pkg"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderSession carries the donor session between form posts. A request
// without one starts a new session, returned in the same header on every
// answer, errors included.
const HeaderSession = "X-Donation-Session"

var (
	errInvalidDonationPayload = pkg.NewDomainErrorSimple("INVALID_DONATION_INPUT", "Invalid donation payload", http.StatusBadRequest)
)

// DonationHandler handles HTTP requests for donation forms.

type DonationHandler struct {
	usecase usecase.IDonationUseCase
}

func NewDonationHandler(uc usecase.IDonationUseCase) *DonationHandler {
	return &DonationHandler{usecase: uc}
}

// Submit runs one gateway transaction for the posted donation form.
//
// The body is accepted as JSON or as a urlencoded form. Gateway results are
// always answered with 200: a declined donation is a result, not an error.
//
// @Summary      Run a gateway transaction for a donation form
// @Tags         donations
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        gateway             path    string                   true   "Gateway identifier"
// @Param        transaction         path    string                   true   "Transaction name"
// @Param        order_id            query   string                   false  "Order id returned by the gateway"
// @Param        X-Donation-Session  header  string                   false  "Donor session"
// @Param        request             body    request.DonationRequest  true   "Donation form"
// @Success      200  {object}  response.TransactionResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /donations/{gateway}/{transaction} [post]
func (h *DonationHandler) Submit(c *gin.Context) {
	gateway := c.Param("gateway")
	txn := c.Param("transaction")
	sessionID := sessionFromRequest(c)
	c.Header(HeaderSession, sessionID)
	log.Printf("[donation][handler] submit start gateway=%s txn=%s session=%s", gateway, txn, sessionID)

	var payload request.DonationRequest
	if err := c.ShouldBind(&payload); err != nil {
		log.Printf("[donation][handler] invalid payload gateway=%s err=%v", gateway, err)
		c.JSON(errInvalidDonationPayload.HTTPStatus, errInvalidDonationPayload.ToHTTPError())
		return
	}
	fields, err := payload.ToFields(c.ClientIP())
	if err != nil {
		appErr := mapDonationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out, err := h.usecase.Submit(c.Request.Context(), usecase.SubmitDonationInput{
		Gateway:         gateway,
		Transaction:     txn,
		SessionID:       sessionID,
		Form:            payload.Form,
		ExternalOrderID: c.Query("order_id"),
		Fields:          fields,
	})
	if err != nil {
		log.Printf("[donation][handler] submit failed gateway=%s txn=%s err=%v", gateway, txn, err)
		appErr := mapDonationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[donation][handler] submit done gateway=%s txn=%s status=%t final_status=%q",
		gateway, txn, out.Result.Status, out.Result.FinalStatus)

	c.JSON(http.StatusOK, response.FromSubmitDonationOutput(out))
}

// Token issues the edit token the next form post of this session must echo.
//
// @Summary      Issue the edit token of a donor session
// @Tags         donations
// @Produce      json
// @Param        gateway             path    string  true   "Gateway identifier"
// @Param        X-Donation-Session  header  string  false  "Donor session"
// @Success      200  {object}  response.EditTokenResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /donations/{gateway}/token [get]
func (h *DonationHandler) Token(c *gin.Context) {
	gateway := c.Param("gateway")
	sessionID := sessionFromRequest(c)
	c.Header(HeaderSession, sessionID)

	token, err := h.usecase.IssueEditToken(c.Request.Context(), gateway, sessionID)
	if err != nil {
		appErr := mapDonationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.EditTokenResponse{Gateway: gateway, Token: token})
}

// @Summary      List the registered gateways
// @Tags         donations
// @Produce      json
// @Success      200  {array}  response.GatewayResponse
// @Router       /gateways [get]
func (h *DonationHandler) Gateways(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromGatewaySummaries(h.usecase.ListGateways()))
}

func sessionFromRequest(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(HeaderSession)); v != "" {
		return v
	}
	return uuid.NewString()
}

func mapDonationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, request.ErrInvalidExpiration), errors.Is(err, usecase.ErrInvalidSessionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownGateway):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_FOUND", "Gateway not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownTransaction):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not supported by this gateway", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
