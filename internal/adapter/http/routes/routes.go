package routes

import (
	"log"
	"os"
	"strconv"

	_ "repairshop/docs" // This will be auto-generated
	"repairshop/internal/adapter/http/handlers"
	repository2 "repairshop/internal/adapter/persistence/repository"
	"repairshop/internal/infrastructure/clock"
	"repairshop/internal/infrastructure/database"
	"repairshop/internal/infrastructure/payments"
	"repairshop/internal/usecase"
	"repairshop/internal/usecase/interfaces"

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
	ddb := database.ConnectDynamoDB()

	jobRepo := repository2.NewJobRecordDynamoRepository(ddb)
	paymentRepo := repository2.NewBillingPaymentDynamoRepository(ddb)

	allocator := usecase.NewSequenceAllocator(jobRepo, clock.System())
	jobUseCase := usecase.NewJobRecordUseCase(jobRepo, allocator, clock.System())

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, jobRepo, paymentGateway)

	jobHandler := handlers.NewJobRecordHandler(jobUseCase)
	billingPaymentHandler := handlers.NewBillingPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWorkshopRoutes(v1, jobHandler, billingPaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
