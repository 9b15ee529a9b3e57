package handler

import (
	"loyalty-platform/internal/adapter/http/dto"
	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"
	"loyalty-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles platform-operator endpoints: merchant review,
// commission management and ledger settlement flags.
type AdminHandler struct {
	adminSvc     ports.AdminService
	merchantRepo ports.MerchantRepository
	reportingSvc ports.ReportingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc ports.AdminService, merchantRepo ports.MerchantRepository, reportingSvc ports.ReportingService) *AdminHandler {
	return &AdminHandler{
		adminSvc:     adminSvc,
		merchantRepo: merchantRepo,
		reportingSvc: reportingSvc,
	}
}

// ListMerchants handles GET /api/v1/admin/merchants.
func (h *AdminHandler) ListMerchants(c *gin.Context) {
	page, pageSize := parsePagination(c)
	var status *domain.MerchantStatus
	if s := c.Query("status"); s != "" {
		ms := domain.MerchantStatus(s)
		status = &ms
	}

	merchants, total, err := h.adminSvc.ListMerchants(c.Request.Context(), status, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.MerchantResponse, 0, len(merchants))
	for i := range merchants {
		items = append(items, toMerchantResponse(&merchants[i]))
	}
	response.Paginated(c, items, response.NewPagination(page, pageSize, total))
}

// GetMerchant handles GET /api/v1/admin/merchants/:id.
func (h *AdminHandler) GetMerchant(c *gin.Context) {
	merchantID, ok := pathID(c, "Merchant")
	if !ok {
		return
	}

	merchant, err := h.merchantRepo.GetByID(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if merchant == nil {
		response.Error(c, apperror.ErrNotFound("Merchant"))
		return
	}

	response.OK(c, toMerchantResponse(merchant))
}

// ApproveMerchant handles POST /api/v1/admin/merchants/:id/approve.
func (h *AdminHandler) ApproveMerchant(c *gin.Context) {
	h.reviewMerchant(c, true)
}

// RejectMerchant handles POST /api/v1/admin/merchants/:id/reject.
func (h *AdminHandler) RejectMerchant(c *gin.Context) {
	h.reviewMerchant(c, false)
}

func (h *AdminHandler) reviewMerchant(c *gin.Context, approve bool) {
	merchantID, ok := pathID(c, "Merchant")
	if !ok {
		return
	}

	merchant, err := h.adminSvc.ReviewMerchant(c.Request.Context(), merchantID, approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMerchantResponse(merchant))
}

// SetCommission handles PUT /api/v1/admin/merchants/:id/commission.
func (h *AdminHandler) SetCommission(c *gin.Context) {
	merchantID, ok := pathID(c, "Merchant")
	if !ok {
		return
	}

	var req dto.SetCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	merchant, err := h.adminSvc.SetCommission(c.Request.Context(), merchantID, req.CommissionPercent)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMerchantResponse(merchant))
}

// ListTransactions handles GET /api/v1/admin/transactions. Unlike the
// merchant listing, results span all merchants.
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	page, pageSize := parsePagination(c)
	params := ports.TransactionListParams{
		Page:     page,
		PageSize: pageSize,
	}
	if t := c.Query("type"); t != "" {
		txType := domain.TransactionType(t)
		params.Type = &txType
	}
	if s := c.Query("pay_status"); s != "" {
		payStatus := domain.PayStatus(s)
		params.PayStatus = &payStatus
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

// UpdatePayStatus handles PATCH /api/v1/admin/transactions/:id/pay-status.
func (h *AdminHandler) UpdatePayStatus(c *gin.Context) {
	txID, ok := pathID(c, "Transaction")
	if !ok {
		return
	}

	var req dto.UpdatePayStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.adminSvc.UpdatePayStatus(c.Request.Context(), txID, domain.PayStatus(req.PayStatus))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}
