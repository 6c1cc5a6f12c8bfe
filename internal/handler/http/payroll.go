package http

import (
	"net/http"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/handler/http/response"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/validator"
)

type PayrollHandler interface {
	GetPayroll(w http.ResponseWriter, r *http.Request)
	GetTodaySummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetPayroll handles GET /payroll?days=&profile_id=
func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	var filter payroll.PayrollFilter
	query := r.URL.Query()

	if days := query.Get("days"); days != "" {
		n, ok := validator.ParseIntInRange(days, 1, payroll.MaxWindowDays)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "days",
				Message: "must be an integer between 1 and " + validator.Itoa(payroll.MaxWindowDays),
			}})
			return
		}
		filter.Days = n
	}

	if profileID := query.Get("profile_id"); !validator.IsEmpty(profileID) {
		filter.ProfileID = &profileID
	}

	result, err := h.payrollService.GetPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTodaySummary handles GET /payroll/today
func (h *payrollHandlerImpl) GetTodaySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetTodaySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
