package dto

import (
	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,accounttype"`
	Description string `json:"description"`
}

// UpdateAccountRequest defines the payload for plain field edits.
// Account type changes do not repolarize history: balances are always
// recomputed from the current type at read time.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AccountType *string `json:"accountType" binding:"omitempty,accounttype"`
	IsActive    *bool   `json:"isActive"`
}

// ListAccountsParams narrows account listings.
type ListAccountsParams struct {
	AccountType *string
	ActiveOnly  *bool
	Limit       int
	Offset      int
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Description: a.Description,
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
