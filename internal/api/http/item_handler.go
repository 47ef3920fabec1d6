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

// ItemHandler exposes item registration, approval, and availability.
type ItemHandler struct {
	itemSvc         service.ItemService
	availabilitySvc service.AvailabilityService
}

func NewItemHandler(itemSvc service.ItemService, availabilitySvc service.AvailabilityService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc, availabilitySvc: availabilitySvc}
}

type registerItemRequest struct {
	Code                    string              `json:"code"`
	Name                    string              `json:"name"`
	IsRentalItem            bool                `json:"is_rental_item"`
	RatePerDay              decimal.Decimal     `json:"rate_per_day"`
	Category                domain.ItemCategory `json:"category"`
	IsThirdParty            bool                `json:"is_third_party"`
	OwnerCommissionPercent  decimal.Decimal     `json:"owner_commission_percent"`
	SupplierID              *int32              `json:"supplier_id"`
	SuggestedCautionDeposit decimal.Decimal     `json:"suggested_caution_deposit"`
	ConditionRating         int32               `json:"condition_rating"`
}

func (h *ItemHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	item := &domain.RentalItem{
		Code:                    req.Code,
		Name:                    req.Name,
		IsRentalItem:            req.IsRentalItem,
		RatePerDay:              req.RatePerDay,
		Category:                req.Category,
		IsThirdParty:            req.IsThirdParty,
		OwnerCommissionPercent:  req.OwnerCommissionPercent,
		SupplierID:              req.SupplierID,
		SuggestedCautionDeposit: req.SuggestedCautionDeposit,
		ConditionRating:         req.ConditionRating,
	}
	created, err := h.itemSvc.Register(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created, nil)
}

func (h *ItemHandler) Approve(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemSvc.Approve(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, item, nil)
}

type rejectItemRequest struct {
	Reason string `json:"reason"`
}

func (h *ItemHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectItemRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	item, err := h.itemSvc.Reject(r.Context(), mux.Vars(r)["code"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, item, nil)
}

type updateConditionRequest struct {
	Rating int32  `json:"rating"`
	Notes  string `json:"notes"`
}

func (h *ItemHandler) UpdateCondition(w http.ResponseWriter, r *http.Request) {
	var req updateConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	item, err := h.itemSvc.UpdateCondition(r.Context(), mux.Vars(r)["code"], req.Rating, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, item, nil)
}

func (h *ItemHandler) ListPendingApproval(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemSvc.ListPendingApproval(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items, nil)
}

type availabilityResponse struct {
	ItemCode  string                   `json:"item_code"`
	Available bool                     `json:"available"`
	Conflicts []domain.BookingConflict `json:"conflicts,omitempty"`
}

// CheckAvailability answers ?start=yyyy-mm-dd&end=yyyy-mm-dd, with an
// optional exclude_booking_id for edit flows.
func (h *ItemHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	start, err := utils.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "start: %v", err))
		return
	}
	end, err := utils.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "end: %v", err))
		return
	}
	var excludeID int32
	if raw := r.URL.Query().Get("exclude_booking_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, domain.E(domain.KindValidation, "invalid exclude_booking_id: %q", raw))
			return
		}
		excludeID = int32(parsed)
	}

	available, conflicts, err := h.availabilitySvc.CheckAvailability(r.Context(), code, start, end, excludeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, availabilityResponse{
		ItemCode:  code,
		Available: available,
		Conflicts: conflicts,
	}, nil)
}

// GetCalendar lists upcoming holds on an item, ?months=N ahead.
func (h *ItemHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	months := 3
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 24 {
			writeError(w, domain.E(domain.KindValidation, "months must be between 1 and 24"))
			return
		}
		months = parsed
	}
	holds, err := h.availabilitySvc.GetItemCalendar(r.Context(), code, months)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, holds, nil)
}
