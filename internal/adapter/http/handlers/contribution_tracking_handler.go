package handlers

import (
	response "donation_interface/internal/adapter/http/dto/response"
	"donation_interface/internal/usecase"
	"donation_interface/pkg"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContributionTrackingHandler struct {
	usecase usecase.IContributionTrackingUseCase
}

func NewContributionTrackingHandler(uc usecase.IContributionTrackingUseCase) *ContributionTrackingHandler {
	return &ContributionTrackingHandler{usecase: uc}
}

// GetByID returns the analytics row of a donation.
//
// @Summary      Get the contribution tracking row of a donation
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "Contribution tracking ID"
// @Success      200  {object}  response.ContributionTrackingResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /contribution-tracking/{id} [get]
func (h *ContributionTrackingHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	t, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[tracking][handler] get failed id=%s err=%v", id, err)
		appErr := mapContributionTrackingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContributionTracking(t))
}

func mapContributionTrackingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContributionTrackingID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrContributionTrackingNotFound):
		return pkg.NewDomainErrorSimple("CONTRIBUTION_TRACKING_NOT_FOUND", "Contribution tracking not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
