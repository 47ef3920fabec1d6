package http

import (
	"encoding/json"
	"net/http"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/service"
)

// CustomerHandler exposes customer registration and the eligibility gate.
type CustomerHandler struct {
	customerSvc    service.CustomerService
	eligibilitySvc service.EligibilityService
}

func NewCustomerHandler(customerSvc service.CustomerService, eligibilitySvc service.EligibilityService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc, eligibilitySvc: eligibilitySvc}
}

type registerCustomerRequest struct {
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	customer, err := h.customerSvc.Register(r.Context(), req.Name, req.MobileNumber, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, customer, nil)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.customerSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, customer, nil)
}

func (h *CustomerHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	eligibility, err := h.eligibilitySvc.CheckEligibility(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, eligibility, nil)
}
