package handler

import (
	"strconv"
	"time"

	"loyalty-platform/internal/adapter/http/dto"
	"loyalty-platform/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parsePagination reads page/page_size query params with sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID.String(),
		CustomerID:      t.CustomerID.String(),
		MerchantID:      t.MerchantID.String(),
		BranchID:        t.BranchID.String(),
		WorkerID:        t.WorkerID.String(),
		Type:            string(t.Type),
		Points:          t.Points,
		CashValue:       t.CashValue,
		Commission:      t.Commission,
		BalanceAfter:    t.BalanceAfter,
		PayStatus:       string(t.PayStatus),
		TransactionDate: formatTime(t.TransactionDate),
	}
}

func toCustomerResponse(c *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                   c.ID.String(),
		BranchID:             c.BranchID.String(),
		AssignedWorkerID:     uuidPtrString(c.AssignedWorkerID),
		FullName:             c.FullName,
		Email:                c.Email,
		PhoneNumber:          c.PhoneNumber,
		WalletBalance:        c.WalletBalance,
		Status:               string(c.Status),
		RegistrationDate:     formatTime(c.RegistrationDate),
		FirstTransactionDate: formatTimePtr(c.FirstTransactionDate),
		LastTransactionDate:  formatTimePtr(c.LastTransactionDate),
	}
}

func toWorkerResponse(w *domain.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:          w.ID.String(),
		BranchID:    uuidPtrString(w.BranchID),
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Email:       w.Email,
		PhoneNumber: w.PhoneNumber,
		Status:      string(w.Status),
		CreatedAt:   formatTime(w.CreatedAt),
	}
}

func toBranchResponse(b *domain.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		City:      b.City,
		Address:   b.Address,
		Status:    string(b.Status),
		CreatedAt: formatTime(b.CreatedAt),
	}
}

func toMerchantResponse(m *domain.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:                m.ID.String(),
		BusinessName:      m.BusinessName,
		BusinessAddress:   m.BusinessAddress,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		CommissionPercent: m.CommissionPercent,
		Status:            string(m.Status),
		CreatedAt:         formatTime(m.CreatedAt),
	}
}

func toSettingsResponse(s *domain.MerchantSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		PointToCurrencyRate: s.PointToCurrencyRate,
		MaxWalletBalance:    s.MaxWalletBalance,
		MaxDailyRedemption:  s.MaxDailyRedemption,
		MaxCustomersLimit:   s.MaxCustomersLimit,
		UpdatedAt:           formatTime(s.UpdatedAt),
	}
}
