package restapi

// Client bindings for the rental resource endpoints. CRUD rules live
// server-side; these are the typed calls the screens are built on.

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// PropertyType classifies a rental property.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
)

// Property is a rental property owned by the landlord.
type Property struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	ZipCode      string       `json:"zipCode"`
	City         string       `json:"city"`
	Type         PropertyType `json:"type"`
	Bedrooms     int          `json:"bedrooms,omitempty"`
	Bathrooms    int          `json:"bathrooms,omitempty"`
	SquareMeters int          `json:"squareMeters,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Tenant is a person renting a property.
type Tenant struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"nationalId"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ContractStatus is the lifecycle state of a rental contract.
type ContractStatus string

const (
	ContractDraft            ContractStatus = "draft"
	ContractPendingSignature ContractStatus = "pending_signature"
	ContractSigned           ContractStatus = "signed"
	ContractActive           ContractStatus = "active"
	ContractExpired          ContractStatus = "expired"
	ContractTerminated       ContractStatus = "terminated"
)

// Contract is a rental contract binding a tenant to a property.
type Contract struct {
	ID            string         `json:"id"`
	PropertyID    string         `json:"propertyId"`
	TenantID      string         `json:"tenantId"`
	Status        ContractStatus `json:"status"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	MonthlyRent   float64        `json:"monthlyRent"`
	DepositAmount float64        `json:"depositAmount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Property      *Property      `json:"property,omitempty"`
	Tenant        *Tenant        `json:"tenant,omitempty"`
}

// ContractCreate is the payload for creating a contract.
type ContractCreate struct {
	PropertyID    string    `json:"propertyId"`
	TenantID      string    `json:"tenantId"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	MonthlyRent   float64   `json:"monthlyRent"`
	DepositAmount float64   `json:"depositAmount"`
}

// PaymentStatus is the settlement state of a rent payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentPaid      PaymentStatus = "paid"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a rent payment tied to a contract.
type Payment struct {
	ID         string        `json:"id"`
	ContractID string        `json:"contractId"`
	Amount     float64       `json:"amount"`
	DueDate    time.Time     `json:"dueDate"`
	PaidDate   *time.Time    `json:"paidDate,omitempty"`
	Status     PaymentStatus `json:"status"`
	Month      int           `json:"month"`
	Year       int           `json:"year"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Notice is a legal notice issued against a contract.
type Notice struct {
	ID          string     `json:"id"`
	ContractID  string     `json:"contractId"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IssueDate   time.Time  `json:"issueDate"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListProperties returns all properties.
func (c *Client) ListProperties(ctx context.Context) ([]Property, error) {
	var out []Property
	if err := c.doJSON(ctx, http.MethodGet, "/properties", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTenants returns all tenants.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	var out []Tenant
	if err := c.doJSON(ctx, http.MethodGet, "/tenants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListContracts returns all contracts.
func (c *Client) ListContracts(ctx context.Context) ([]Contract, error) {
	var out []Contract
	if err := c.doJSON(ctx, http.MethodGet, "/contracts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetContract returns a single contract by ID.
func (c *Client) GetContract(ctx context.Context, id string) (Contract, error) {
	var out Contract
	if err := c.doJSON(ctx, http.MethodGet, "/contracts/"+url.PathEscape(id), nil, &out); err != nil {
		return Contract{}, err
	}
	return out, nil
}

// CreateContract creates a new contract.
func (c *Client) CreateContract(ctx context.Context, in ContractCreate) (Contract, error) {
	var out Contract
	if err := c.doJSON(ctx, http.MethodPost, "/contracts", in, &out); err != nil {
		return Contract{}, err
	}
	return out, nil
}

// ListPayments returns all payments.
func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	var out []Payment
	if err := c.doJSON(ctx, http.MethodGet, "/payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNotices returns all legal notices.
func (c *Client) ListNotices(ctx context.Context) ([]Notice, error) {
	var out []Notice
	if err := c.doJSON(ctx, http.MethodGet, "/notices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
