package account

import (
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/service/ledger"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the account endpoints under /api/v1/accounts.
//
// Routes:
//   - GET    /api/v1/accounts?status=ACTIVE                        : List accounts by status.
//   - GET    /api/v1/accounts/account/:accountNumber               : Fetch one account.
//   - PUT    /api/v1/accounts/account/:accountNumber/status/:status : Change the account status.
//   - DELETE /api/v1/accounts/account/:accountNumber               : Close the account.
func Routes(app *fiber.App, ledgerSvc *ledger.Service) {
	accounts := app.Group("/api/v1/accounts")
	accounts.Get("/", ListAccounts(ledgerSvc))
	accounts.Get("/account/:accountNumber", GetAccount(ledgerSvc))
	accounts.Put("/account/:accountNumber/status/:status", UpdateStatus(ledgerSvc))
	accounts.Delete("/account/:accountNumber", CloseAccount(ledgerSvc))
}

// ListAccounts returns a handler listing the accounts in a given status.
// @Summary List accounts by status
// @Description Lists the banking accounts in the given status. Defaults to ACTIVE. Returns 204 when none match.
// @Tags accounts
// @Produce json
// @Param status query string false "Account status" Enums(ACTIVE, INACTIVE, BLOCKED, FROZEN, CLOSED, OVERDUE)
// @Success 200 {object} common.Response "Accounts found"
// @Success 204 "No accounts"
// @Failure 400 {object} common.ProblemDetails "Invalid status"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts [get]
func ListAccounts(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := account.ParseStatus(c.Query("status", account.StatusActive.String()))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account status", err)
		}
		accounts, err := ledgerSvc.ListAccounts(c.UserContext(), status)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.ListResponseJSON(c, "Accounts found", toAccountDTOs(accounts))
	}
}

// GetAccount returns a handler fetching one account by number.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} common.Response "Account found"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber} [get]
func GetAccount(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := ledgerSvc.GetAccount(c.UserContext(), c.Params("accountNumber"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", ToAccountDTO(acc))
	}
}

// UpdateStatus returns a handler changing the status of an account.
// @Summary Change the account status
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param status path string true "New status" Enums(ACTIVE, INACTIVE, BLOCKED, FROZEN, CLOSED, OVERDUE)
// @Success 200 {object} common.Response "Status updated"
// @Failure 400 {object} common.ProblemDetails "Invalid status"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber}/status/{status} [put]
func UpdateStatus(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		status, err := account.ParseStatus(c.Params("status"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account status", err)
		}
		if err := ledgerSvc.UpdateAccountStatus(c.UserContext(), number, status); err != nil {
			log.Errorf("Failed to update status of account %s: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to update account status", err)
		}
		log.Infof("Account %s is now %s", number, status)
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			"Account "+number+" status updated to "+status.String(), nil)
	}
}

// CloseAccount returns a handler closing an account.
// @Summary Close an account
// @Description Marks the account CLOSED and stamps the closing date. The account row is kept.
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} common.Response "Account closed"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Account already closed"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber} [delete]
func CloseAccount(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		if err := ledgerSvc.CloseAccount(c.UserContext(), number); err != nil {
			log.Errorf("Failed to close account %s: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account "+number+" closed", nil)
	}
}
