package router

import (
	"hotelier/internal/handlers/activity"
	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/customer"
	"hotelier/internal/handlers/hotelservice"
	"hotelier/internal/handlers/inspection"
	"hotelier/internal/handlers/invoice"
	"hotelier/internal/handlers/promotion"
	"hotelier/internal/handlers/report"
	"hotelier/internal/handlers/room"
	"hotelier/internal/handlers/transaction"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room         room.Handler
	Booking      booking.Handler
	Inspection   inspection.Handler
	Promotion    promotion.Handler
	HotelService hotelservice.Handler
	Transaction  transaction.Handler
	Invoice      invoice.Handler
	Report       report.Handler
	Activity     activity.Handler
	Customer     customer.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Inspection.Router(routerGroup)
		r.DomainHandlers.Promotion.Router(routerGroup)
		r.DomainHandlers.HotelService.Router(routerGroup)
		r.DomainHandlers.Transaction.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Activity.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
