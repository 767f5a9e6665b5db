//go:build wireinject
// +build wireinject

package di

import (
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	"hotelier/permissions"
	"hotelier/shared/cache"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"

	"github.com/google/wire"

	activityRepository "hotelier/internal/domains/activity/repository"
	activityService "hotelier/internal/domains/activity/service"
	bookingRepository "hotelier/internal/domains/booking/repository"
	bookingService "hotelier/internal/domains/booking/service"
	customerRepository "hotelier/internal/domains/customer/repository"
	customerService "hotelier/internal/domains/customer/service"
	hotelServiceRepository "hotelier/internal/domains/hotelservice/repository"
	hotelServiceService "hotelier/internal/domains/hotelservice/service"
	inspectionRepository "hotelier/internal/domains/inspection/repository"
	inspectionService "hotelier/internal/domains/inspection/service"
	invoiceRepository "hotelier/internal/domains/invoice/repository"
	invoiceService "hotelier/internal/domains/invoice/service"
	promotionRepository "hotelier/internal/domains/promotion/repository"
	promotionService "hotelier/internal/domains/promotion/service"
	reportRepository "hotelier/internal/domains/report/repository"
	reportService "hotelier/internal/domains/report/service"
	roomRepository "hotelier/internal/domains/room/repository"
	roomService "hotelier/internal/domains/room/service"
	transactionRepository "hotelier/internal/domains/transaction/repository"
	transactionService "hotelier/internal/domains/transaction/service"

	activityHandler "hotelier/internal/handlers/activity"
	bookingHandler "hotelier/internal/handlers/booking"
	customerHandler "hotelier/internal/handlers/customer"
	hotelServiceHandler "hotelier/internal/handlers/hotelservice"
	inspectionHandler "hotelier/internal/handlers/inspection"
	invoiceHandler "hotelier/internal/handlers/invoice"
	promotionHandler "hotelier/internal/handlers/promotion"
	reportHandler "hotelier/internal/handlers/report"
	roomHandler "hotelier/internal/handlers/room"
	transactionHandler "hotelier/internal/handlers/transaction"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	kafka.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewRoomType,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewBookingRoom,
	bookingRepository.NewBookingGuest,
	bookingRepository.NewStayRecord,
	bookingService.New,
)

var inspectionDomain = wire.NewSet(
	inspectionRepository.New,
	inspectionService.New,
)

var promotionDomain = wire.NewSet(
	promotionRepository.New,
	promotionRepository.NewPromotionRedemption,
	promotionService.New,
)

var hotelServiceDomain = wire.NewSet(
	hotelServiceRepository.New,
	hotelServiceRepository.NewServiceUsage,
	hotelServiceService.New,
)

var transactionDomain = wire.NewSet(
	transactionRepository.New,
	transactionRepository.NewTransactionDetail,
	transactionRepository.NewGuestFolio,
	transactionService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activityService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.NewCustomerTier,
	customerService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	inspectionDomain,
	promotionDomain,
	hotelServiceDomain,
	transactionDomain,
	invoiceDomain,
	reportDomain,
	activityDomain,
	customerDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	inspectionHandler.New,
	promotionHandler.New,
	hotelServiceHandler.New,
	transactionHandler.New,
	invoiceHandler.New,
	reportHandler.New,
	activityHandler.New,
	customerHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
