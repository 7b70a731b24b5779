package client

import (
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// AddAdherent returns a handler registering an adherent of a main client.
// Adherents start ACTIVE with their own account.
// @Summary Add an adherent
// @Tags adherents
// @Accept json
// @Produce json
// @Param dni path string true "Main client DNI"
// @Param request body RegisterRequest true "Adherent details"
// @Success 201 {object} common.Response "Adherent added"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Main client not found"
// @Failure 409 {object} common.ProblemDetails "DNI or e-mail already registered"
// @Router /api/v1/clients/client/{dni}/adherents/adherent [post]
func AddAdherent(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mainDni := c.Params("dni")
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err // error response already written
		}
		created, err := clientSvc.AddAdherent(c.UserContext(), mainDni, input.registration())
		if err != nil {
			log.Errorf("Failed to add adherent %s to %s: %v", input.Dni, mainDni, err)
			return common.ProblemDetailsJSON(c, "Failed to add adherent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Adherent added", ToClientDTO(created))
	}
}

// ListAdherents returns a handler listing the adherents of a main client.
// @Summary List adherents
// @Tags adherents
// @Produce json
// @Param dni path string true "Main client DNI"
// @Success 200 {object} common.Response "Adherents found"
// @Success 204 "No adherents"
// @Failure 404 {object} common.ProblemDetails "Main client not found"
// @Router /api/v1/clients/client/{dni}/adherents [get]
func ListAdherents(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := clientSvc.ListAdherents(c.UserContext(), c.Params("dni"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list adherents", err)
		}
		return common.ListResponseJSON(c, "Adherents found", toClientDTOs(list))
	}
}

// GetAdherent returns a handler fetching one adherent of a main client.
// @Summary Get an adherent
// @Tags adherents
// @Produce json
// @Param dniMain path string true "Main client DNI"
// @Param dniAdherent path string true "Adherent DNI"
// @Success 200 {object} common.Response "Adherent found"
// @Failure 404 {object} common.ProblemDetails "Not an adherent of this client"
// @Router /api/v1/clients/client/{dniMain}/adherents/adherent/{dniAdherent} [get]
func GetAdherent(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := clientSvc.GetAdherent(c.UserContext(), c.Params("dniMain"), c.Params("dniAdherent"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get adherent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Adherent found", ToClientDTO(found))
	}
}

// UpdateAdherent returns a handler updating an adherent.
// @Summary Update an adherent
// @Tags adherents
// @Accept json
// @Produce json
// @Param dniMain path string true "Main client DNI"
// @Param dniAdherent path string true "Adherent DNI"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} common.Response "Adherent updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Not an adherent of this client"
// @Router /api/v1/clients/client/{dniMain}/adherents/adherent/{dniAdherent} [put]
func UpdateAdherent(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mainDni, adherentDni := c.Params("dniMain"), c.Params("dniAdherent")
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err // error response already written
		}
		updated, err := clientSvc.UpdateAdherent(c.UserContext(), mainDni, adherentDni, input.patch())
		if err != nil {
			log.Errorf("Failed to update adherent %s of %s: %v", adherentDni, mainDni, err)
			return common.ProblemDetailsJSON(c, "Failed to update adherent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Adherent updated", ToClientDTO(updated))
	}
}

// RemoveAdherent returns a handler deleting an adherent with its account and
// transaction history.
// @Summary Remove an adherent
// @Tags adherents
// @Produce json
// @Param dniMain path string true "Main client DNI"
// @Param dniAdherent path string true "Adherent DNI"
// @Success 200 {object} common.Response "Adherent removed"
// @Failure 404 {object} common.ProblemDetails "Not an adherent of this client"
// @Router /api/v1/clients/client/{dniMain}/adherents/adherent/{dniAdherent} [delete]
func RemoveAdherent(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mainDni, adherentDni := c.Params("dniMain"), c.Params("dniAdherent")
		if err := clientSvc.RemoveAdherent(c.UserContext(), mainDni, adherentDni); err != nil {
			log.Errorf("Failed to remove adherent %s of %s: %v", adherentDni, mainDni, err)
			return common.ProblemDetailsJSON(c, "Failed to remove adherent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Adherent "+adherentDni+" removed", nil)
	}
}

// SetAdherentStatus returns a handler changing the status of an adherent.
// @Summary Change the adherent status
// @Tags adherents
// @Produce json
// @Param dniMain path string true "Main client DNI"
// @Param dniAdherent path string true "Adherent DNI"
// @Param status path string true "New status" Enums(ACTIVE, INACTIVE, PENDING, BANNED)
// @Success 200 {object} common.Response "Status updated"
// @Failure 400 {object} common.ProblemDetails "Invalid status"
// @Failure 404 {object} common.ProblemDetails "Not an adherent of this client"
// @Router /api/v1/clients/client/{dniMain}/adherents/adherent/{dniAdherent}/status/{status} [put]
func SetAdherentStatus(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mainDni, adherentDni := c.Params("dniMain"), c.Params("dniAdherent")
		status, err := client.ParseStatus(c.Params("status"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid client status", err)
		}
		if err := clientSvc.SetAdherentStatus(c.UserContext(), mainDni, adherentDni, status); err != nil {
			log.Errorf("Failed to set status of adherent %s: %v", adherentDni, err)
			return common.ProblemDetailsJSON(c, "Failed to update adherent status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			"Adherent "+adherentDni+" status updated to "+status.String(), nil)
	}
}
