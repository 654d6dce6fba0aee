package v1

import (
	"net/http"

	"github.com/powerguard/autonomy-planner/internal/service"
)

// (GET /api/v1/models)
func (s *ServiceHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, ModelsReply{Default: s.calcSrv.DefaultModel(), Models: s.calcSrv.Models()})
}

// (POST /api/v1/calculations)
func (s *ServiceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var form CalculationRequest
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	in, err := InputFromRequest(form)
	if err != nil {
		renderError(w, r, service.NewErrInvalidInput(err))
		return
	}

	calc, err := s.calcSrv.Calculate(r.Context(), in, form.Model)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CalculationToApi(calc))
}

// (POST /api/v1/calculations/compare)
func (s *ServiceHandler) CompareModels(w http.ResponseWriter, r *http.Request) {
	var form CalculationRequest
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	in, err := InputFromRequest(form)
	if err != nil {
		renderError(w, r, service.NewErrInvalidInput(err))
		return
	}

	calcs, err := s.calcSrv.Compare(r.Context(), in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	replies := make([]CalculationReply, 0, len(calcs))
	for _, c := range calcs {
		replies = append(replies, CalculationToApi(c))
	}
	renderJSON(w, r, http.StatusOK, replies)
}
