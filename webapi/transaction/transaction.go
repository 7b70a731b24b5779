package transaction

import (
	"errors"
	"strconv"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/service/ledger"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Prefix is the mount point of the transaction routes.
const Prefix = "/api/v1/accounts/account/:accountNumber/transactions"

// Routes registers the transaction endpoints of an account.
//
// Routes (relative to Prefix):
//   - POST   /transaction/recharge/:amount     : Credit the account.
//   - POST   /transaction/withdrawal/:amount   : Debit the account.
//   - POST   /transaction/transfer             : Move money to another account.
//   - GET    /transaction/:transactionId       : Fetch one entry.
//   - PUT    /transaction/:transactionId       : Correct a recharge or withdrawal.
//   - DELETE /transaction/:transactionId       : Remove a recharge or withdrawal.
//   - GET    /                                 : Full history.
//   - GET    /filterByType/:type               : History of one type.
//   - GET    /filterByDateRange                : History between two days.
//   - GET    /filterByTypeAndDateRange         : Both filters combined.
func Routes(app *fiber.App, ledgerSvc *ledger.Service) {
	txs := app.Group(Prefix)
	txs.Post("/transaction/recharge/:amount", Recharge(ledgerSvc))
	txs.Post("/transaction/withdrawal/:amount", Withdraw(ledgerSvc))
	txs.Post("/transaction/transfer", Transfer(ledgerSvc))
	txs.Get("/transaction/:transactionId", GetTransaction(ledgerSvc))
	txs.Put("/transaction/:transactionId", UpdateTransaction(ledgerSvc))
	txs.Delete("/transaction/:transactionId", DeleteTransaction(ledgerSvc))
	txs.Get("/", ListTransactions(ledgerSvc))
	txs.Get("/filterByType/:type", FilterByType(ledgerSvc))
	txs.Get("/filterByDateRange", FilterByDateRange(ledgerSvc))
	txs.Get("/filterByTypeAndDateRange", FilterByTypeAndDateRange(ledgerSvc))
}

func transactionID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("transactionId"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "transaction id must be a positive integer")
	}
	return uint(id), nil
}

// Recharge returns a handler crediting an account.
// @Summary Recharge an account
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param amount path string true "Amount, a positive decimal"
// @Success 201 {object} common.Response "Recharge successful"
// @Failure 400 {object} common.ProblemDetails "Malformed amount"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Inactive account or non-positive amount"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/recharge/{amount} [post]
func Recharge(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		amount, err := common.ParseAmount(c.Params("amount"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		tx, err := ledgerSvc.Recharge(c.UserContext(), number, amount)
		if err != nil {
			log.Errorf("Failed to recharge account %s: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to recharge", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Recharge successful", ToTransactionDTO(tx))
	}
}

// Withdraw returns a handler debiting an account.
// @Summary Withdraw from an account
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param amount path string true "Amount, a positive decimal"
// @Success 201 {object} common.Response "Withdrawal successful"
// @Failure 400 {object} common.ProblemDetails "Malformed amount"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Insufficient funds or inactive account"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/withdrawal/{amount} [post]
func Withdraw(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		amount, err := common.ParseAmount(c.Params("amount"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		tx, err := ledgerSvc.Withdraw(c.UserContext(), number, amount)
		if err != nil {
			log.Errorf("Failed to withdraw from account %s: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal successful", ToTransactionDTO(tx))
	}
}

// Transfer returns a handler moving money between two accounts. The response
// carries the debit leg recorded on the source account.
// @Summary Transfer between accounts
// @Tags transactions
// @Accept json
// @Produce json
// @Param accountNumber path string true "Source account number"
// @Param request body TransferRequest true "Transfer details"
// @Success 201 {object} common.Response "Transfer successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Insufficient funds, inactive account or self transfer"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/transfer [post]
func Transfer(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err // error response already written
		}
		tx, err := ledgerSvc.Transfer(c.UserContext(), number, input.DestinationAccountNumber, input.Amount)
		if err != nil {
			log.Errorf("Failed to transfer from %s to %s: %v", number, input.DestinationAccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", ToTransactionDTO(tx))
	}
}

// GetTransaction returns a handler fetching one entry of an account.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} common.Response "Transaction found"
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Failure 409 {object} common.ProblemDetails "Inactive account"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/{transactionId} [get]
func GetTransaction(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := transactionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := ledgerSvc.GetTransaction(c.UserContext(), c.Params("accountNumber"), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", ToTransactionDTO(tx))
	}
}

// UpdateTransaction returns a handler correcting a settled recharge or
// withdrawal. The account balance absorbs the difference.
// @Summary Correct a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param transactionId path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "New type and/or amount"
// @Success 200 {object} common.Response "Transaction updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Failure 409 {object} common.ProblemDetails "Transfer leg or insufficient funds"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/{transactionId} [put]
func UpdateTransaction(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		id, err := transactionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		if input.Type == "" && input.Amount == nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil,
				"at least one of type or amount must be provided", fiber.StatusBadRequest)
		}
		patch := ledger.TransactionPatch{Amount: input.Amount}
		if input.Type != "" {
			t, err := account.ParseType(input.Type)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid transaction type", err)
			}
			patch.Type = &t
		}
		tx, err := ledgerSvc.UpdateTransaction(c.UserContext(), number, id, patch)
		if err != nil {
			log.Errorf("Failed to update transaction %d of %s: %v", id, number, err)
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", ToTransactionDTO(tx))
	}
}

// DeleteTransaction returns a handler removing a recharge or withdrawal and
// reversing its effect on the balance.
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} common.Response "Transaction deleted"
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Failure 409 {object} common.ProblemDetails "Transfer leg or insufficient funds"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/transaction/{transactionId} [delete]
func DeleteTransaction(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		id, err := transactionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		if err := ledgerSvc.DeleteTransaction(c.UserContext(), number, id); err != nil {
			log.Errorf("Failed to delete transaction %d of %s: %v", id, number, err)
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction "+strconv.FormatUint(uint64(id), 10)+" deleted", nil)
	}
}

// ListTransactions returns a handler listing the full history of an account.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} common.Response "Transactions found"
// @Success 204 "No transactions"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Inactive account"
// @Router /api/v1/accounts/account/{accountNumber}/transactions [get]
func ListTransactions(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := ledgerSvc.ListAll(c.UserContext(), c.Params("accountNumber"))
		return respond(c, txs, err)
	}
}

// FilterByType returns a handler listing the entries of one type.
// @Summary List transactions by type
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param type path string true "Transaction type" Enums(RECHARGE, WITHDRAWAL, TRANSFER)
// @Success 200 {object} common.Response "Transactions found"
// @Success 204 "No transactions"
// @Failure 400 {object} common.ProblemDetails "Invalid type"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/filterByType/{type} [get]
func FilterByType(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := account.ParseType(c.Params("type"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction type", err)
		}
		txs, err := ledgerSvc.FilterByType(c.UserContext(), c.Params("accountNumber"), t)
		return respond(c, txs, err)
	}
}

// FilterByDateRange returns a handler listing the entries between two days,
// both inclusive.
// @Summary List transactions by date range
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param fromDate query string true "First day, YYYY-MM-DD"
// @Param toDate query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} common.Response "Transactions found"
// @Success 204 "No transactions"
// @Failure 400 {object} common.ProblemDetails "Invalid dates"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/filterByDateRange [get]
func FilterByDateRange(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := common.ParseDateRange(c.Query("fromDate"), c.Query("toDate"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid date range", err)
		}
		txs, err := ledgerSvc.FilterByDateRange(c.UserContext(), c.Params("accountNumber"), from, to)
		return respond(c, txs, err)
	}
}

// FilterByTypeAndDateRange returns a handler combining both filters.
// @Summary List transactions by type and date range
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param transactionTypeFilter query string true "Transaction type" Enums(RECHARGE, WITHDRAWAL, TRANSFER)
// @Param fromDate query string true "First day, YYYY-MM-DD"
// @Param toDate query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} common.Response "Transactions found"
// @Success 204 "No transactions"
// @Failure 400 {object} common.ProblemDetails "Invalid type or dates"
// @Router /api/v1/accounts/account/{accountNumber}/transactions/filterByTypeAndDateRange [get]
func FilterByTypeAndDateRange(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := account.ParseType(c.Query("transactionTypeFilter"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction type", err)
		}
		from, to, err := common.ParseDateRange(c.Query("fromDate"), c.Query("toDate"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid date range", err)
		}
		txs, err := ledgerSvc.FilterByTypeAndDateRange(c.UserContext(), c.Params("accountNumber"), t, from, to)
		return respond(c, txs, err)
	}
}

func respond(c *fiber.Ctx, txs []*account.Transaction, err error) error {
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Errorf("Failed to list transactions of %s: %v", c.Params("accountNumber"), err)
		}
		return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
	}
	return common.ListResponseJSON(c, "Transactions found", toTransactionDTOs(txs))
}
