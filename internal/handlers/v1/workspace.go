package v1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/powerguard/autonomy-planner/internal/service"
)

// (POST /api/v1/workspaces)
func (s *ServiceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var form WorkspaceForm
	if r.ContentLength != 0 {
		if err := s.decode(r, &form); err != nil {
			renderError(w, r, err)
			return
		}
	}

	ws := s.workspaceSrv.Create(r.Context(), form.Name)
	renderJSON(w, r, http.StatusCreated, WorkspaceToApi(ws))
}

// (GET /api/v1/workspaces)
func (s *ServiceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, WorkspaceListToApi(s.workspaceSrv.List(r.Context())))
}

// (GET /api/v1/workspaces/{id})
func (s *ServiceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	ws, err := s.workspaceSrv.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, WorkspaceToApi(ws))
}

// (DELETE /api/v1/workspaces/{id})
func (s *ServiceHandler) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := s.workspaceSrv.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// (POST /api/v1/workspaces/{id}/sources)
func (s *ServiceHandler) AddWorkspaceSource(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var form AddSourceForm
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	if form.Custom != nil {
		src, err := s.workspaceSrv.AddCustomPowerBank(r.Context(), id, service.CustomPowerBank{
			Model:       form.Custom.Model,
			CapacityMah: form.Custom.CapacityMah,
			MaxOutputW:  form.Custom.MaxOutputW,
		})
		if err != nil {
			renderError(w, r, err)
			return
		}
		renderJSON(w, r, http.StatusCreated, src)
		return
	}

	src, err := s.workspaceSrv.AddSource(r.Context(), id, form.CatalogID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, src)
}

// (DELETE /api/v1/workspaces/{id}/sources/{sourceId})
func (s *ServiceHandler) RemoveWorkspaceSource(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := s.workspaceSrv.RemoveSource(r.Context(), id, chi.URLParam(r, "sourceId")); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// (POST /api/v1/workspaces/{id}/devices)
func (s *ServiceHandler) AddWorkspaceDevice(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var form AddDeviceForm
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	dev, err := s.workspaceSrv.AddDevice(r.Context(), id, form.CatalogID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, dev)
}

// (PATCH /api/v1/workspaces/{id}/devices/{deviceId})
func (s *ServiceHandler) UpdateWorkspaceDevice(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var form DeviceUpdateForm
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	dev, err := s.workspaceSrv.SetUsageHours(r.Context(), id, chi.URLParam(r, "deviceId"), form.UsageHours)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, dev)
}

// (DELETE /api/v1/workspaces/{id}/devices/{deviceId})
func (s *ServiceHandler) RemoveWorkspaceDevice(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := s.workspaceSrv.RemoveDevice(r.Context(), id, chi.URLParam(r, "deviceId")); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// (PUT /api/v1/workspaces/{id}/connections)
func (s *ServiceHandler) SetWorkspaceConnection(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var form ConnectionForm
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	if err := s.workspaceSrv.Connect(r.Context(), id, form.SourceID, form.DeviceID); err != nil {
		renderError(w, r, err)
		return
	}

	ws, err := s.workspaceSrv.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, WorkspaceToApi(ws))
}

// (POST /api/v1/workspaces/{id}/optimize)
func (s *ServiceHandler) OptimizeWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	ws, err := s.workspaceSrv.Optimize(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, WorkspaceToApi(ws))
}

// (PUT /api/v1/workspaces/{id}/scenario)
func (s *ServiceHandler) UpdateWorkspaceScenario(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var form ScenarioForm
	if err := s.decode(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	ws, err := s.workspaceSrv.UpdateScenario(r.Context(), id, form.toScenario())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, WorkspaceToApi(ws))
}

// (GET /api/v1/workspaces/{id}/result)
func (s *ServiceHandler) GetWorkspaceResult(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	calc, err := s.workspaceSrv.Calculate(r.Context(), id, r.URL.Query().Get("model"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CalculationToApi(calc))
}

// (GET /api/v1/workspaces/{id}/report)
func (s *ServiceHandler) GetWorkspaceReport(w http.ResponseWriter, r *http.Request) {
	id, err := workspaceID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	format, err := service.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	ws, err := s.workspaceSrv.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	calc, err := s.calcSrv.Calculate(r.Context(), ws.Input(), r.URL.Query().Get("model"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	report, err := s.reportSrv.GenerateReport(ws, calc, format)
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", attachment(report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Content)
}
