package handler

import (
	"loyalty-platform/internal/adapter/http/dto"
	"loyalty-platform/internal/adapter/http/middleware"
	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"
	"loyalty-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkerHandler handles worker-facing endpoints: the customers assigned to
// the authenticated worker and the wallet operations on them.
type WorkerHandler struct {
	walletSvc    ports.WalletService
	reportingSvc ports.ReportingService
	customerRepo ports.CustomerRepository
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(walletSvc ports.WalletService, reportingSvc ports.ReportingService, customerRepo ports.CustomerRepository) *WorkerHandler {
	return &WorkerHandler{
		walletSvc:    walletSvc,
		reportingSvc: reportingSvc,
		customerRepo: customerRepo,
	}
}

// ListCustomers handles GET /api/v1/workers/customers.
func (h *WorkerHandler) ListCustomers(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, pageSize := parsePagination(c)
	params := ports.CustomerListParams{
		WorkerID: &p.ID,
		Page:     page,
		PageSize: pageSize,
	}
	if s := c.Query("status"); s != "" {
		status := domain.CustomerStatus(s)
		params.Status = &status
	}

	customers, total, err := h.customerRepo.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, toCustomerResponse(&customers[i]))
	}
	response.Paginated(c, items, response.NewPagination(page, pageSize, total))
}

// GetCustomer handles GET /api/v1/workers/customers/:id. Customers not
// assigned to the caller come back as the same 404 as missing ones.
func (h *WorkerHandler) GetCustomer(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrCustomerNotAccessible())
		return
	}

	customer, err := h.customerRepo.GetByID(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if customer == nil || customer.AssignedWorkerID == nil || *customer.AssignedWorkerID != p.ID {
		response.Error(c, apperror.ErrCustomerNotAccessible())
		return
	}

	response.OK(c, toCustomerResponse(customer))
}

// Topup handles POST /api/v1/workers/customers/:id/topup.
func (h *WorkerHandler) Topup(c *gin.Context) {
	h.applyWalletTransaction(c, domain.TransactionTypeCredit)
}

// Redeem handles POST /api/v1/workers/customers/:id/redeem.
func (h *WorkerHandler) Redeem(c *gin.Context) {
	h.applyWalletTransaction(c, domain.TransactionTypeDebit)
}

func (h *WorkerHandler) applyWalletTransaction(c *gin.Context, txType domain.TransactionType) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrCustomerNotAccessible())
		return
	}

	var req dto.WalletTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.walletSvc.Apply(c.Request.Context(), ports.WalletTransactionRequest{
		CustomerID: customerID,
		WorkerID:   p.ID,
		Type:       txType,
		Points:     req.Points,
		CashValue:  req.CashValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.WalletTransactionResponse{
		Transaction:      toTransactionResponse(result.Transaction),
		NewWalletBalance: result.NewBalance,
	})
}

// ListCustomerTransactions handles GET /api/v1/workers/customers/:id/transactions.
func (h *WorkerHandler) ListCustomerTransactions(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrCustomerNotAccessible())
		return
	}

	customer, err := h.customerRepo.GetByID(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if customer == nil || customer.AssignedWorkerID == nil || *customer.AssignedWorkerID != p.ID {
		response.Error(c, apperror.ErrCustomerNotAccessible())
		return
	}

	page, pageSize := parsePagination(c)
	params := ports.TransactionListParams{
		CustomerID: &customerID,
		Page:       page,
		PageSize:   pageSize,
	}
	if t := c.Query("type"); t != "" {
		txType := domain.TransactionType(t)
		params.Type = &txType
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}
	response.Paginated(c, items, response.NewPagination(page, pageSize, total))
}
