package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
	"github.com/pharmflow/pharmflow/internal/service"
)

type PharmacyHandler struct {
	pharmacySvc *service.PharmacyService
}

func NewPharmacyHandler(pharmacySvc *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacySvc: pharmacySvc}
}

type createPharmacyRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

func (h *PharmacyHandler) Create(c *gin.Context) {
	var req createPharmacyRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &pharmacy.CreatePharmacyCommand{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		CreatedBy: callerID(c),
	}

	p, err := h.pharmacySvc.CreatePharmacy(c.Request.Context(), cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toPharmacyResponse(p))
}

func (h *PharmacyHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.pharmacySvc.GetPharmacy(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPharmacyResponse(p))
}

type updatePharmacyRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	ZipCode *string `json:"zip_code"`
	Active  *bool   `json:"active"`
}

func (h *PharmacyHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePharmacyRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &pharmacy.UpdatePharmacyCommand{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		Active:    req.Active,
		UpdatedBy: callerID(c),
	}

	p, err := h.pharmacySvc.UpdatePharmacy(c.Request.Context(), id, cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPharmacyResponse(p))
}

func (h *PharmacyHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.pharmacySvc.DeletePharmacy(c.Request.Context(), id, callerID(c), string(callerRole(c)), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (h *PharmacyHandler) List(c *gin.Context) {
	pharmacies, err := h.pharmacySvc.ListPharmacies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]pharmacyResponse, 0, len(pharmacies))
	for _, p := range pharmacies {
		out = append(out, toPharmacyResponse(p))
	}
	respondOK(c, out)
}
