package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/rs/zerolog"
)

// BusinessProfileHandler expone el perfil del emisor.
type BusinessProfileHandler struct {
	uc  *billing.BusinessProfileUseCase
	log zerolog.Logger
}

// NewBusinessProfileHandler construye el handler.
func NewBusinessProfileHandler(uc *billing.BusinessProfileUseCase, log zerolog.Logger) *BusinessProfileHandler {
	return &BusinessProfileHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener perfil del emisor
// @Tags         business-profile
// @Produce      json
// @Success      200  {object}  dto.BusinessProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business-profile [get]
func (h *BusinessProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Put godoc
// @Summary      Crear o reemplazar perfil del emisor
// @Tags         business-profile
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BusinessProfileRequest  true  "Perfil"
// @Success      200   {object}  dto.BusinessProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business-profile [put]
func (h *BusinessProfileHandler) Put(c *fiber.Ctx) error {
	var in dto.BusinessProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
