package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles seller profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles getting the seller profile
// @Summary Get Seller Profile
// @Description Get the shop profile printed on invoices
// @Tags profile
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// Update handles updating the seller profile
// @Summary Update Seller Profile
// @Description Overwrite the shop profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.APIResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", profile)
}
