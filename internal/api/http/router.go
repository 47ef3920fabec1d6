package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rental-booking-backend/internal/service"
)

// NewRouter wires every API route under /api/v1.
func NewRouter(
	bookingSvc service.BookingService,
	exchangeSvc service.ExchangeService,
	availabilitySvc service.AvailabilityService,
	eligibilitySvc service.EligibilityService,
	itemSvc service.ItemService,
	customerSvc service.CustomerService,
) *mux.Router {
	bookings := NewBookingHandler(bookingSvc, exchangeSvc)
	items := NewItemHandler(itemSvc, availabilitySvc)
	customers := NewCustomerHandler(customerSvc, eligibilitySvc)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/bookings", bookings.Create).Methods("POST")
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/confirm", bookings.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/status", bookings.UpdateStatus).Methods("POST")
	api.HandleFunc("/bookings/{id}/refund-deposit", bookings.RefundDeposit).Methods("POST")
	api.HandleFunc("/bookings/{id}/exchange", bookings.LinkExchange).Methods("POST")

	api.HandleFunc("/items", items.Register).Methods("POST")
	api.HandleFunc("/items/pending-approval", items.ListPendingApproval).Methods("GET")
	api.HandleFunc("/items/{code}/approve", items.Approve).Methods("POST")
	api.HandleFunc("/items/{code}/reject", items.Reject).Methods("POST")
	api.HandleFunc("/items/{code}/condition", items.UpdateCondition).Methods("POST")
	api.HandleFunc("/items/{code}/availability", items.CheckAvailability).Methods("GET")
	api.HandleFunc("/items/{code}/calendar", items.GetCalendar).Methods("GET")

	api.HandleFunc("/customers", customers.Register).Methods("POST")
	api.HandleFunc("/customers/{id}", customers.Get).Methods("GET")
	api.HandleFunc("/customers/{id}/eligibility", customers.CheckEligibility).Methods("GET")

	api.HandleFunc("/health", handleHealth).Methods("GET")
	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}
