package handler

import (
	"net/http"

	"loyalty-platform/internal/adapter/http/dto"
	"loyalty-platform/internal/adapter/http/middleware"
	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"
	"loyalty-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc      ports.AuthService
	merchantRepo ports.MerchantRepository
	workerRepo   ports.WorkerRepository
	adminRepo    ports.AdminRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authSvc ports.AuthService,
	merchantRepo ports.MerchantRepository,
	workerRepo ports.WorkerRepository,
	adminRepo ports.AdminRepository,
) *AuthHandler {
	return &AuthHandler{
		authSvc:      authSvc,
		merchantRepo: merchantRepo,
		workerRepo:   workerRepo,
		adminRepo:    adminRepo,
	}
}

// Register handles POST /api/v1/auth/register. New merchants start out
// pending until an admin reviews them.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	merchant, err := h.authSvc.RegisterMerchant(c.Request.Context(), ports.RegisterMerchantRequest{
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toMerchantResponse(merchant))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Unix(),
		Role:      string(result.Principal.Role),
		AccountID: result.Principal.ID.String(),
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var account interface{}
	switch p.Role {
	case domain.RoleMerchant:
		m, err := h.merchantRepo.GetByID(c.Request.Context(), p.ID)
		if err != nil || m == nil {
			response.Error(c, apperror.ErrNotFound("Account"))
			return
		}
		account = toMerchantResponse(m)
	case domain.RoleWorker:
		w, err := h.workerRepo.GetByID(c.Request.Context(), p.ID)
		if err != nil || w == nil {
			response.Error(c, apperror.ErrNotFound("Account"))
			return
		}
		account = toWorkerResponse(w)
	case domain.RoleAdmin:
		a, err := h.adminRepo.GetByID(c.Request.Context(), p.ID)
		if err != nil || a == nil {
			response.Error(c, apperror.ErrNotFound("Account"))
			return
		}
		account = a
	default:
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	response.OK(c, dto.MeResponse{
		ID:      p.ID.String(),
		Role:    string(p.Role),
		Account: account,
	})
}

// HealthCheck handles GET /health, verifying all registered dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Check(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
