package identity

import (
	"context"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	employeeRepo identity.EmployeeRepository
	roleRepo     identity.RoleRepository
	jwtService   *auth.JWTService
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	employeeRepo identity.EmployeeRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login authenticates an employee and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	employee, err := s.employeeRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("Employee not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !employee.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !employee.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	role, err := s.roleRepo.FindByID(ctx, employee.RoleID)
	if err != nil {
		s.logger.Error("Failed to load employee role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load employee role")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		EmployeeID:  employee.ID,
		Username:    employee.Username,
		BranchID:    employee.BranchID,
		Role:        role.Name,
		Permissions: []string(role.Permissions),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	employee.RecordLogin()
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		// Don't fail the login, just log the error
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Employee logged in",
		zap.String("username", employee.Username),
		zap.String("employee_id", employee.ID.String()),
		zap.String("branch_id", employee.BranchID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Employee: EmployeeInfo{
			ID:          employee.ID,
			Code:        employee.Code,
			Name:        employee.Name,
			Username:    employee.Username,
			RoleID:      role.ID,
			RoleName:    role.Name,
			BranchID:    employee.BranchID,
			Permissions: []string(role.Permissions),
		},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// Permissions are re-read from the role so revocations take effect.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	employeeID, err := claims.GetEmployeeUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid employee ID in token")
	}

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("Employee not found during token refresh", zap.String("employee_id", employeeID.String()))
		return nil, shared.NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found")
	}
	if !employee.IsActive() {
		s.logger.Warn("Token refresh for deactivated account", zap.String("employee_id", employeeID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	role, err := s.roleRepo.FindByID(ctx, employee.RoleID)
	if err != nil {
		s.logger.Error("Failed to load role during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load employee role")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, auth.GenerateTokenInput{
		EmployeeID:  employee.ID,
		Username:    employee.Username,
		BranchID:    employee.BranchID,
		Role:        role.Name,
		Permissions: []string(role.Permissions),
	})
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("employee_id", employee.ID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentEmployee returns the authenticated employee's profile
func (s *AuthService) GetCurrentEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeInfo, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.FindByID(ctx, employee.RoleID)
	if err != nil {
		return nil, err
	}

	return &EmployeeInfo{
		ID:          employee.ID,
		Code:        employee.Code,
		Name:        employee.Name,
		Username:    employee.Username,
		RoleID:      role.ID,
		RoleName:    role.Name,
		BranchID:    employee.BranchID,
		Permissions: []string(role.Permissions),
	}, nil
}

// ChangePassword changes the authenticated employee's password
func (s *AuthService) ChangePassword(ctx context.Context, employeeID uuid.UUID, input ChangePasswordInput) error {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := employee.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("employee_id", employeeID.String()))
	return nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
