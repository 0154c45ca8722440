package routes

import (
	_ "donation_interface/docs" // This will be auto-generated
	"donation_interface/internal/adapter/http/handlers"
	repository2 "donation_interface/internal/adapter/persistence/repository"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/infrastructure/database"
	"donation_interface/internal/infrastructure/gateways"
	"donation_interface/internal/infrastructure/payments"
	"donation_interface/internal/usecase"
	"donation_interface/internal/usecase/interfaces"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	settings, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load gateway settings: %v", err)
	}
	registry, err := gateways.NewRegistry(settings)
	if err != nil {
		log.Fatalf("Failed to build gateway registry: %v", err)
	}

	ddb := database.ConnectDynamoDB()

	trackingRepo := repository2.NewContributionTrackingDynamoRepository(ddb)
	sessionStore := repository2.NewSessionDynamoStore(ddb)
	velocityStore := repository2.NewVelocityCounterDynamoStore(ddb)
	queue := repository2.NewNotificationQueueDynamoRepository(ddb)

	runtimes := registry.Runtimes(newGatewayTransport, velocityStore)

	trackingUseCase := usecase.NewContributionTrackingUseCase(trackingRepo)
	donationUseCase := usecase.NewDonationUseCase(runtimes, sessionStore, trackingUseCase, queue)

	donationHandler := handlers.NewDonationHandler(donationUseCase)
	trackingHandler := handlers.NewContributionTrackingHandler(trackingUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addDonationRoutes(v1, donationHandler, trackingHandler)
}

// newGatewayTransport drops the proxy when it is misconfigured instead of
// leaving the gateway without a transport.
func newGatewayTransport(g gateways.Gateway) interfaces.IGatewayTransport {
	opts := payments.TransportOptions{
		Gateway:           g.Definition.Identifier(),
		Timeout:           g.Settings.Timeout,
		UseHTTPProxy:      g.Settings.UseHTTPProxy,
		HTTPProxy:         g.Settings.HTTPProxy,
		ClientTimeoutHint: g.Settings.ClientTimeoutHint,
	}
	t, err := payments.NewHTTPGatewayTransport(opts)
	if err != nil {
		log.Printf("[gateway][transport] %s proxy not usable, sending direct: %v", opts.Gateway, err)
		opts.UseHTTPProxy = false
		t, _ = payments.NewHTTPGatewayTransport(opts)
	}
	return t
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
