package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
)

// validate is the shared validator for request forms. Struct tags mirror the
// constraints the backend enforces so obviously bad input never leaves the
// process.
var validate = validator.New(validator.WithRequiredStructEnabled())

// loginForm carries the password login request.
type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// contractForm carries the contract creation request.
type contractForm struct {
	PropertyID    string  `json:"propertyId" validate:"required"`
	TenantID      string  `json:"tenantId" validate:"required"`
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	MonthlyRent   float64 `json:"monthlyRent" validate:"required,gt=0"`
	DepositAmount float64 `json:"depositAmount" validate:"gte=0"`
}

// checkForm validates a form struct and converts the failure into a
// field-level validation error.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("invalid request").Wrap(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperrors.Validationf("invalid fields: %s", strings.Join(fields, ", "))
}
