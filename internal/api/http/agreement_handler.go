package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/service"
)

// AgreementHandler exposes the rental agreement lifecycle over HTTP
type AgreementHandler struct {
	agreements service.AgreementService
}

func NewAgreementHandler(agreements service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreements: agreements}
}

type createAgreementRequest struct {
	VehicleID           int64            `json:"vehicle_id"`
	PaymentMethodID     int64            `json:"payment_method_id"`
	LocationID          int64            `json:"location_id"`
	RsvpPickupTime      time.Time        `json:"rsvp_pickup_time"`
	RsvpDropOffTime     time.Time        `json:"rsvp_drop_off_time"`
	LiabilityProtection bool             `json:"liability_protection"`
	LiabilityRate       decimal.Decimal  `json:"liability_rate"`
	DamageProtection    bool             `json:"damage_protection"`
	DamageRate          decimal.Decimal  `json:"damage_rate"`
	DurationRate        decimal.Decimal  `json:"duration_rate"`
	UtilizationFactor   decimal.Decimal  `json:"utilization_factor"`
	TaxRateSnapshot     decimal.Decimal  `json:"tax_rate_snapshot"`
	MileagePackageID    *int64           `json:"mileage_package_id,omitempty"`
	MileageRateOverride *decimal.Decimal `json:"mileage_rate_override,omitempty"`
	DiscountAmount      decimal.Decimal  `json:"discount_amount"`
	PromoCodeID         *int64           `json:"promo_code_id,omitempty"`
	PromoDiscount       decimal.Decimal  `json:"promo_discount"`
	TaxIDs              []int64          `json:"tax_ids"`
}

type checkRequest struct {
	SnapshotID  int64           `json:"snapshot_id"`
	RewardHours decimal.Decimal `json:"reward_hours"`
}

type listAgreementsResponse struct {
	Agreements []domain.Agreement `json:"agreements"`
	Total      int32              `json:"total"`
	Page       int32              `json:"page"`
	PageSize   int32              `json:"page_size"`
}

func (h *AgreementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Title: "Invalid Request", Message: "malformed JSON body"})
		return
	}

	renterID := renterIDFromContext(r.Context())
	ag, err := h.agreements.CreateAgreement(r.Context(), renterID, service.CreateAgreementParams{
		VehicleID:           req.VehicleID,
		PaymentMethodID:     req.PaymentMethodID,
		LocationID:          req.LocationID,
		RsvpPickupTime:      req.RsvpPickupTime,
		RsvpDropOffTime:     req.RsvpDropOffTime,
		LiabilityProtection: req.LiabilityProtection,
		LiabilityRate:       req.LiabilityRate,
		DamageProtection:    req.DamageProtection,
		DamageRate:          req.DamageRate,
		DurationRate:        req.DurationRate,
		UtilizationFactor:   req.UtilizationFactor,
		TaxRateSnapshot:     req.TaxRateSnapshot,
		MileagePackageID:    req.MileagePackageID,
		MileageRateOverride: req.MileageRateOverride,
		DiscountAmount:      req.DiscountAmount,
		PromoCodeID:         req.PromoCodeID,
		PromoDiscount:       req.PromoDiscount,
		TaxIDs:              req.TaxIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ag)
}

func (h *AgreementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ag, err := h.agreements.GetAgreement(r.Context(), renterIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ag)
}

func (h *AgreementHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)
	status := q.Get("status")

	agreements, total, err := h.agreements.ListAgreements(r.Context(), renterIDFromContext(r.Context()), status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listAgreementsResponse{
		Agreements: agreements,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (h *AgreementHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, h.agreements.CheckOut)
}

func (h *AgreementHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, h.agreements.CheckIn)
}

type checkOp func(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*service.CheckResult, error)

func (h *AgreementHandler) check(w http.ResponseWriter, r *http.Request, op checkOp) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Title: "Invalid Request", Message: "malformed JSON body"})
		return
	}

	result, err := op(r.Context(), renterIDFromContext(r.Context()), id, req.SnapshotID, req.RewardHours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AgreementHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ag, err := h.agreements.CancelAgreement(r.Context(), renterIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ag)
}

// RegisterRoutes mounts the agreement endpoints on an authenticated router
func (h *AgreementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/agreements", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/agreements", h.List).Methods(http.MethodGet)
	router.HandleFunc("/agreements/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/agreements/{id:[0-9]+}/checkout", h.CheckOut).Methods(http.MethodPost)
	router.HandleFunc("/agreements/{id:[0-9]+}/checkin", h.CheckIn).Methods(http.MethodPost)
	router.HandleFunc("/agreements/{id:[0-9]+}/cancel", h.Cancel).Methods(http.MethodPost)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Title: "Invalid Request", Message: "malformed " + name + " path parameter"}
	}
	return id, nil
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
