package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/service"
	"rental-booking-backend/internal/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookingSvc  service.BookingService
	exchangeSvc service.ExchangeService
}

func NewBookingHandler(bookingSvc service.BookingService, exchangeSvc service.ExchangeService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, exchangeSvc: exchangeSvc}
}

type createBookingRequest struct {
	CustomerID           int32               `json:"customer_id"`
	FunctionDate         string              `json:"function_date"`
	RentalDurationDays   int32               `json:"rental_duration_days"`
	GrandTotal           decimal.Decimal     `json:"grand_total"`
	AdvanceAmount        decimal.Decimal     `json:"advance_amount"`
	CautionDepositAmount decimal.Decimal     `json:"caution_deposit_amount"`
	Items                []bookingLineRequest `json:"items"`
}

type bookingLineRequest struct {
	ItemCode string          `json:"item_code"`
	Qty      int32           `json:"qty"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	functionDate, err := utils.ParseDate(req.FunctionDate)
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "%v", err))
		return
	}

	booking := &domain.Booking{
		CustomerID:           req.CustomerID,
		IsRentalBooking:      true,
		FunctionDate:         functionDate,
		RentalDurationDays:   req.RentalDurationDays,
		GrandTotal:           req.GrandTotal,
		OutstandingAmount:    req.GrandTotal.Sub(req.AdvanceAmount),
		AdvanceAmount:        req.AdvanceAmount,
		CautionDepositAmount: req.CautionDepositAmount,
	}
	for _, line := range req.Items {
		booking.Items = append(booking.Items, domain.BookingItem{
			ItemCode: line.ItemCode,
			Qty:      line.Qty,
			Amount:   line.Amount,
		})
	}

	created, err := h.bookingSvc.CreateDraft(r.Context(), booking)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created, nil)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking, nil)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, warnings, err := h.bookingSvc.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking, warnings)
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
	Notes  string               `json:"notes"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	booking, warnings, err := h.bookingSvc.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking, warnings)
}

type refundDepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

func (h *BookingHandler) RefundDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req refundDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	booking, warnings, err := h.bookingSvc.RefundDeposit(r.Context(), id, req.Amount, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking, warnings)
}

type exchangeRequest struct {
	OriginalBookingID int32 `json:"original_booking_id"`
}

func (h *BookingHandler) LinkExchange(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	booking, err := h.exchangeSvc.LinkExchange(r.Context(), id, req.OriginalBookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking, nil)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.E(domain.KindValidation, "invalid %s: %q", name, raw)
	}
	return int32(id), nil
}
