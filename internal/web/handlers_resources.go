package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/arrendo/arrendo-ui/internal/adapters/restapi"
	"github.com/arrendo/arrendo-ui/internal/apperrors"
)

// ResourceHandlers exposes the rental resources as JSON endpoints. They are
// thin: validation happens here, everything else is the backend's call.
type ResourceHandlers struct {
	API    *restapi.Client
	Logger *slog.Logger
}

// writeList fetches a collection and writes it, normalizing nil to an empty
// array so clients never see null.
func writeList[T any](w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]T, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *ResourceHandlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.API.ListProperties)
}

func (h *ResourceHandlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.API.ListTenants)
}

func (h *ResourceHandlers) ListContracts(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.API.ListContracts)
}

func (h *ResourceHandlers) GetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.API.GetContract(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contract)
}

// CreateContract validates the form locally before the round-trip; dates must
// be well-formed and the rent positive.
func (h *ResourceHandlers) CreateContract(w http.ResponseWriter, r *http.Request) {
	var form contractForm
	if !DecodeJSON(w, r, &form) {
		return
	}
	if err := checkForm(form); err != nil {
		WriteError(w, err)
		return
	}

	start, err := time.Parse("2006-01-02", form.StartDate)
	if err != nil {
		WriteError(w, apperrors.Validation("startDate must be a YYYY-MM-DD date"))
		return
	}
	end, err := time.Parse("2006-01-02", form.EndDate)
	if err != nil {
		WriteError(w, apperrors.Validation("endDate must be a YYYY-MM-DD date"))
		return
	}
	if !end.After(start) {
		WriteError(w, apperrors.Validation("endDate must be after startDate"))
		return
	}

	contract, err := h.API.CreateContract(r.Context(), restapi.ContractCreate{
		PropertyID:    form.PropertyID,
		TenantID:      form.TenantID,
		StartDate:     start,
		EndDate:       end,
		MonthlyRent:   form.MonthlyRent,
		DepositAmount: form.DepositAmount,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, contract)
}

func (h *ResourceHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.API.ListPayments)
}

func (h *ResourceHandlers) ListNotices(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.API.ListNotices)
}
