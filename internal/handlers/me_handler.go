package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/regions"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// ======================================================
// CUSTOMER PROFILE
// ======================================================

func (h *MeHandler) GetCustomer(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	c.JSON(http.StatusOK, customer)
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Region  *string `json:"region"`
}

func (h *MeHandler) UpdateCustomer(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Region != nil {
		canonical, ok := regions.Normalize(*req.Region)
		if !ok {
			httperr.BadRequestField(c, "invalid_region", "Unknown region.", "region")
			return
		}
		customer.Region = canonical
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not save profile.")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// TECHNICIAN PROFILE
// ======================================================

func (h *MeHandler) GetTechnician(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	var tech models.Technician
	if err := h.db.Preload("Regions").First(&tech, technicianID).Error; err != nil {
		httperr.NotFound(c, "technician_not_found", "Technician not found.")
		return
	}

	c.JSON(http.StatusOK, tech)
}

type UpdateTechnicianRequest struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	LicenseNumber *string  `json:"license_number"`
	Insured       *bool    `json:"insured"`
	Available     *bool    `json:"available"`
	Regions       []string `json:"regions"`
}

func (h *MeHandler) UpdateTechnician(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	var tech models.Technician
	if err := h.db.First(&tech, technicianID).Error; err != nil {
		httperr.NotFound(c, "technician_not_found", "Technician not found.")
		return
	}

	var req UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		tech.Name = *req.Name
	}
	if req.Phone != nil {
		tech.Phone = *req.Phone
	}
	if req.Address != nil {
		tech.Address = *req.Address
	}
	if req.LicenseNumber != nil {
		tech.LicenseNumber = *req.LicenseNumber
	}
	if req.Insured != nil {
		tech.Insured = *req.Insured
	}
	if req.Available != nil {
		tech.Available = *req.Available
	}

	var served []models.TechnicianRegion
	if req.Regions != nil {
		for _, raw := range req.Regions {
			canonical, ok := regions.Normalize(raw)
			if !ok {
				httperr.BadRequestField(c, "invalid_region", "Unknown region.", "regions")
				return
			}
			served = append(served, models.TechnicianRegion{
				TechnicianID: tech.ID,
				Region:       canonical,
			})
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tech).Error; err != nil {
			return err
		}
		if req.Regions == nil {
			return nil
		}
		if err := tx.Where("technician_id = ?", tech.ID).
			Delete(&models.TechnicianRegion{}).Error; err != nil {
			return err
		}
		if len(served) == 0 {
			return nil
		}
		return tx.Create(&served).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_technician", "Could not save profile.")
		return
	}

	h.db.Preload("Regions").First(&tech, tech.ID)
	c.JSON(http.StatusOK, tech)
}
