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

// MerchantHandler handles merchant-facing management endpoints: workers,
// branches, customers, the transaction ledger, settings and stats.
type MerchantHandler struct {
	staffSvc     ports.StaffService
	customerSvc  ports.CustomerService
	settingsSvc  ports.SettingsService
	reportingSvc ports.ReportingService
	customerRepo ports.CustomerRepository
	workerRepo   ports.WorkerRepository
	txRepo       ports.TransactionRepository
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(
	staffSvc ports.StaffService,
	customerSvc ports.CustomerService,
	settingsSvc ports.SettingsService,
	reportingSvc ports.ReportingService,
	customerRepo ports.CustomerRepository,
	workerRepo ports.WorkerRepository,
	txRepo ports.TransactionRepository,
) *MerchantHandler {
	return &MerchantHandler{
		staffSvc:     staffSvc,
		customerSvc:  customerSvc,
		settingsSvc:  settingsSvc,
		reportingSvc: reportingSvc,
		customerRepo: customerRepo,
		workerRepo:   workerRepo,
		txRepo:       txRepo,
	}
}

// merchantID resolves the authenticated merchant, or writes an error and
// reports false.
func merchantID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	return p.ID, true
}

func pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound(entity))
		return uuid.Nil, false
	}
	return id, true
}

// --- Workers ---

// CreateWorker handles POST /api/v1/merchants/workers.
func (h *MerchantHandler) CreateWorker(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	worker, err := h.staffSvc.CreateWorker(c.Request.Context(), mID, ports.CreateWorkerRequest{
		BranchID:    req.BranchID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWorkerResponse(worker))
}

// GetWorker handles GET /api/v1/merchants/workers/:id.
func (h *MerchantHandler) GetWorker(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "Worker")
	if !ok {
		return
	}

	worker, err := h.workerRepo.GetByIDForMerchant(c.Request.Context(), workerID, mID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if worker == nil {
		response.Error(c, apperror.ErrNotFound("Worker"))
		return
	}

	response.OK(c, toWorkerResponse(worker))
}

// UpdateWorker handles PATCH /api/v1/merchants/workers/:id.
func (h *MerchantHandler) UpdateWorker(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "Worker")
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	update := ports.UpdateWorkerRequest{
		BranchID:    req.BranchID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Status != nil {
		status := domain.WorkerStatus(*req.Status)
		update.Status = &status
	}

	worker, err := h.staffSvc.UpdateWorker(c.Request.Context(), mID, workerID, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWorkerResponse(worker))
}

// ListWorkers handles GET /api/v1/merchants/workers.
func (h *MerchantHandler) ListWorkers(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	var status *domain.WorkerStatus
	if s := c.Query("status"); s != "" {
		ws := domain.WorkerStatus(s)
		status = &ws
	}

	workers, total, err := h.staffSvc.ListWorkers(c.Request.Context(), mID, status, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		items = append(items, toWorkerResponse(&workers[i]))
	}
	response.Paginated(c, items, response.NewPagination(page, pageSize, total))
}

// --- Branches ---

// CreateBranch handles POST /api/v1/merchants/branches.
func (h *MerchantHandler) CreateBranch(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	branch, err := h.staffSvc.CreateBranch(c.Request.Context(), mID, ports.CreateBranchRequest{
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBranchResponse(branch))
}

// UpdateBranch handles PATCH /api/v1/merchants/branches/:id.
func (h *MerchantHandler) UpdateBranch(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "Branch")
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	update := ports.UpdateBranchRequest{
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
	}
	if req.Status != nil {
		status := domain.BranchStatus(*req.Status)
		update.Status = &status
	}

	branch, err := h.staffSvc.UpdateBranch(c.Request.Context(), mID, branchID, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBranchResponse(branch))
}

// ListBranches handles GET /api/v1/merchants/branches.
func (h *MerchantHandler) ListBranches(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	branches, total, err := h.staffSvc.ListBranches(c.Request.Context(), mID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		items = append(items, toBranchResponse(&branches[i]))
	}
	response.Paginated(c, items, response.NewPagination(page, pageSize, total))
}

// --- Customers ---

// RegisterCustomer handles POST /api/v1/merchants/customers.
func (h *MerchantHandler) RegisterCustomer(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	customer, err := h.customerSvc.Register(c.Request.Context(), ports.RegisterCustomerRequest{
		MerchantID:       mID,
		BranchID:         req.BranchID,
		AssignedWorkerID: req.AssignedWorkerID,
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCustomerResponse(customer))
}

// ListCustomers handles GET /api/v1/merchants/customers.
func (h *MerchantHandler) ListCustomers(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	params := ports.CustomerListParams{
		MerchantID: &mID,
		Page:       page,
		PageSize:   pageSize,
	}
	if s := c.Query("status"); s != "" {
		status := domain.CustomerStatus(s)
		params.Status = &status
	}
	if b := c.Query("branch_id"); b != "" {
		if branchID, err := uuid.Parse(b); err == nil {
			params.BranchID = &branchID
		}
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

// GetCustomer handles GET /api/v1/merchants/customers/:id.
func (h *MerchantHandler) GetCustomer(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, "Customer")
	if !ok {
		return
	}

	customer, err := h.customerRepo.GetByIDForMerchant(c.Request.Context(), customerID, mID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if customer == nil {
		response.Error(c, apperror.ErrNotFound("Customer"))
		return
	}

	response.OK(c, toCustomerResponse(customer))
}

// UpdateCustomerStatus handles PATCH /api/v1/merchants/customers/:id/status.
func (h *MerchantHandler) UpdateCustomerStatus(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, "Customer")
	if !ok {
		return
	}

	var req dto.UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customer, err := h.customerSvc.UpdateStatus(c.Request.Context(), mID, customerID, domain.CustomerStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toCustomerResponse(customer))
}

// --- Transactions ---

// ListTransactions handles GET /api/v1/merchants/transactions.
func (h *MerchantHandler) ListTransactions(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	params := ports.TransactionListParams{
		MerchantID: &mID,
		Page:       page,
		PageSize:   pageSize,
	}
	if t := c.Query("type"); t != "" {
		txType := domain.TransactionType(t)
		params.Type = &txType
	}
	if s := c.Query("pay_status"); s != "" {
		payStatus := domain.PayStatus(s)
		params.PayStatus = &payStatus
	}
	if b := c.Query("branch_id"); b != "" {
		if branchID, err := uuid.Parse(b); err == nil {
			params.BranchID = &branchID
		}
	}
	if cu := c.Query("customer_id"); cu != "" {
		if customerID, err := uuid.Parse(cu); err == nil {
			params.CustomerID = &customerID
		}
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

// GetTransaction handles GET /api/v1/merchants/transactions/:id.
func (h *MerchantHandler) GetTransaction(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}
	txID, ok := pathID(c, "Transaction")
	if !ok {
		return
	}

	txn, err := h.txRepo.GetByIDForMerchant(c.Request.Context(), txID, mID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if txn == nil {
		response.Error(c, apperror.ErrNotFound("Transaction"))
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// --- Settings ---

// GetSettings handles GET /api/v1/merchants/settings/points.
func (h *MerchantHandler) GetSettings(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	settings, err := h.settingsSvc.Get(c.Request.Context(), mID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSettingsResponse(settings))
}

// UpdateSettings handles PUT /api/v1/merchants/settings/points.
func (h *MerchantHandler) UpdateSettings(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), mID, ports.SettingsUpdate{
		PointToCurrencyRate: req.PointToCurrencyRate,
		MaxWalletBalance:    req.MaxWalletBalance,
		MaxDailyRedemption:  req.MaxDailyRedemption,
		MaxCustomersLimit:   req.MaxCustomersLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSettingsResponse(settings))
}

// --- Stats ---

// GetStats handles GET /api/v1/merchants/stats.
func (h *MerchantHandler) GetStats(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetPointsStats(c.Request.Context(), mID, period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PointsStatsResponse{
		TotalTransactions: stats.TotalTransactions,
		PointsCredited:    stats.PointsCredited,
		PointsRedeemed:    stats.PointsRedeemed,
		CashVolume:        stats.CashVolume,
		CommissionAccrued: stats.CommissionAccrued,
		Period:            period,
	})
}
