package client

import (
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	clientsvc "github.com/amirasaad/bankoffice/pkg/service/client"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the client directory endpoints under /api/v1/clients.
func Routes(app *fiber.App, clientSvc *clientsvc.Service) {
	clients := app.Group("/api/v1/clients")
	clients.Post("/client", Register(clientSvc))
	clients.Get("/", ListClients(clientSvc))
	clients.Get("/client/:dni", GetClient(clientSvc))
	clients.Put("/client/:dni", UpdateClient(clientSvc))
	clients.Delete("/client/:dni", DeleteClient(clientSvc))
	clients.Put("/client/:dni/status/:status", SetStatus(clientSvc))

	clients.Post("/client/:dni/adherents/adherent", AddAdherent(clientSvc))
	clients.Get("/client/:dni/adherents", ListAdherents(clientSvc))
	clients.Get("/client/:dniMain/adherents/adherent/:dniAdherent", GetAdherent(clientSvc))
	clients.Put("/client/:dniMain/adherents/adherent/:dniAdherent", UpdateAdherent(clientSvc))
	clients.Delete("/client/:dniMain/adherents/adherent/:dniAdherent", RemoveAdherent(clientSvc))
	clients.Put("/client/:dniMain/adherents/adherent/:dniAdherent/status/:status", SetAdherentStatus(clientSvc))
}

// Register returns a handler registering a new client together with its
// banking account. The client starts PENDING and receives a welcome e-mail.
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Client details"
// @Success 201 {object} common.Response "Client registered"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "DNI or e-mail already registered"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/clients/client [post]
func Register(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err // error response already written
		}
		created, err := clientSvc.Register(c.UserContext(), input.registration())
		if err != nil {
			log.Errorf("Failed to register client %s: %v", input.Dni, err)
			return common.ProblemDetailsJSON(c, "Failed to register client", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Client registered", ToClientDTO(created))
	}
}

// ListClients returns a handler listing clients in a status, with their
// adherents.
// @Summary List clients by status
// @Tags clients
// @Produce json
// @Param status query string false "Client status" Enums(ACTIVE, INACTIVE, PENDING, BANNED)
// @Success 200 {object} common.Response "Clients found"
// @Success 204 "No clients"
// @Failure 400 {object} common.ProblemDetails "Invalid status"
// @Router /api/v1/clients [get]
func ListClients(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := client.ParseStatus(c.Query("status", client.StatusActive.String()))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid client status", err)
		}
		summaries, err := clientSvc.ListByStatus(c.UserContext(), status)
		if err != nil {
			log.Errorf("Failed to list clients: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list clients", err)
		}
		out := make([]*ClientDTO, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, fromSummary(s))
		}
		return common.ListResponseJSON(c, "Clients found", out)
	}
}

// GetClient returns a handler fetching a client by DNI.
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param dni path string true "Client DNI"
// @Success 200 {object} common.Response "Client found"
// @Failure 404 {object} common.ProblemDetails "Client not found"
// @Router /api/v1/clients/client/{dni} [get]
func GetClient(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := clientSvc.GetByDni(c.UserContext(), c.Params("dni"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get client", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Client found", ToClientDTO(found))
	}
}

// UpdateClient returns a handler updating an ACTIVE client.
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param dni path string true "Client DNI"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} common.Response "Client updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Client not found"
// @Failure 409 {object} common.ProblemDetails "Client not active or e-mail taken"
// @Router /api/v1/clients/client/{dni} [put]
func UpdateClient(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err // error response already written
		}
		updated, err := clientSvc.UpdateByDni(c.UserContext(), dni, input.patch())
		if err != nil {
			log.Errorf("Failed to update client %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to update client", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Client updated", ToClientDTO(updated))
	}
}

// DeleteClient returns a handler deactivating a client. The record is kept.
// @Summary Deactivate a client
// @Tags clients
// @Produce json
// @Param dni path string true "Client DNI"
// @Success 200 {object} common.Response "Client deactivated"
// @Failure 404 {object} common.ProblemDetails "Client not found"
// @Router /api/v1/clients/client/{dni} [delete]
func DeleteClient(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		if err := clientSvc.DeleteByDni(c.UserContext(), dni); err != nil {
			log.Errorf("Failed to deactivate client %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to delete client", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Client "+dni+" deactivated", nil)
	}
}

// SetStatus returns a handler changing the status of a client.
// @Summary Change the client status
// @Tags clients
// @Produce json
// @Param dni path string true "Client DNI"
// @Param status path string true "New status" Enums(ACTIVE, INACTIVE, PENDING, BANNED)
// @Success 200 {object} common.Response "Status updated"
// @Failure 400 {object} common.ProblemDetails "Invalid status"
// @Failure 404 {object} common.ProblemDetails "Client not found"
// @Router /api/v1/clients/client/{dni}/status/{status} [put]
func SetStatus(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		status, err := client.ParseStatus(c.Params("status"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid client status", err)
		}
		if err := clientSvc.SetStatus(c.UserContext(), dni, status); err != nil {
			log.Errorf("Failed to set status of client %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to update client status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			"Client "+dni+" status updated to "+status.String(), nil)
	}
}
