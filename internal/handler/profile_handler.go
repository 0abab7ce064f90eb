package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/service"
)

// ProfileHandler handles profile endpoints. All routes are scoped to the
// authenticated user.
type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateProfile godoc
// @Summary Create a profile for the authenticated user
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateProfileRequest true "Create request"
// @Success 201 {object} model.Profile
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req model.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Create(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// ListProfiles godoc
// @Summary List the authenticated user's profiles
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Profile
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.FindByUserID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetProfile godoc
// @Summary Get a profile by id
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} model.Profile
// @Failure 404 {object} model.ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update a profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Param body body model.UpdateProfileRequest true "Update request"
// @Success 200 {object} model.Profile
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /profiles/{id} [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary Delete a profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} model.DeletedResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeletedResponse{Deleted: true})
}

// ValidatePin godoc
// @Summary Check a PIN against a profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Param body body model.ValidatePinRequest true "PIN"
// @Success 200 {object} model.ValidatePinResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /profiles/{id}/validate-pin [post]
func (h *ProfileHandler) ValidatePin(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.ValidatePinRequest
	if !bindJSON(c, &req) {
		return
	}

	valid, err := h.profileService.ValidatePIN(id, req.PIN)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ValidatePinResponse{Valid: valid})
}
