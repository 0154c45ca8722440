package routes

import (
	"donation_interface/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathDonations            = "/donations"
	PathGateways             = "/gateways"
	PathContributionTracking = "/contribution-tracking"
)

func addDonationRoutes(rg *gin.RouterGroup, donationHandler *handlers.DonationHandler, trackingHandler *handlers.ContributionTrackingHandler) {
	donations := rg.Group(PathDonations)
	{
		donations.POST("/:gateway/:transaction", donationHandler.Submit)
		donations.GET("/:gateway/token", donationHandler.Token)
	}

	rg.GET(PathGateways, donationHandler.Gateways)
	rg.GET(PathContributionTracking+"/:id", trackingHandler.GetByID)
}
