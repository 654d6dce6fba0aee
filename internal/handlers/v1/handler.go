package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/handlers/validator"
	"github.com/powerguard/autonomy-planner/internal/service"
	"github.com/powerguard/autonomy-planner/pkg/requestid"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	catalogSrv   *service.CatalogService
	calcSrv      *service.CalculationService
	workspaceSrv *service.WorkspaceService
	reportSrv    *service.ReportService
	validator    *validator.Validator
}

func NewServiceHandler(
	catalogService *service.CatalogService,
	calculationService *service.CalculationService,
	workspaceService *service.WorkspaceService,
	reportService *service.ReportService,
) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewPlanValidationRules()...)

	return &ServiceHandler{
		catalogSrv:   catalogService,
		calcSrv:      calculationService,
		workspaceSrv: workspaceService,
		reportSrv:    reportService,
		validator:    v,
	}
}

// Routes mounts the versioned API on r.
func (s *ServiceHandler) Routes(r chi.Router) {
	r.Get("/health", s.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/sources", s.ListCatalogSources)
			r.Get("/sources/{id}", s.GetCatalogSource)
			r.Get("/devices", s.ListCatalogDevices)
			r.Get("/devices/{id}", s.GetCatalogDevice)
			r.Get("/categories", s.ListCategories)
		})

		r.Get("/models", s.ListModels)
		r.Post("/calculations", s.Calculate)
		r.Post("/calculations/compare", s.CompareModels)

		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", s.CreateWorkspace)
			r.Get("/", s.ListWorkspaces)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetWorkspace)
				r.Delete("/", s.DeleteWorkspace)
				r.Post("/sources", s.AddWorkspaceSource)
				r.Delete("/sources/{sourceId}", s.RemoveWorkspaceSource)
				r.Post("/devices", s.AddWorkspaceDevice)
				r.Patch("/devices/{deviceId}", s.UpdateWorkspaceDevice)
				r.Delete("/devices/{deviceId}", s.RemoveWorkspaceDevice)
				r.Put("/connections", s.SetWorkspaceConnection)
				r.Post("/optimize", s.OptimizeWorkspace)
				r.Put("/scenario", s.UpdateWorkspaceScenario)
				r.Get("/result", s.GetWorkspaceResult)
				r.Get("/report", s.GetWorkspaceReport)
			})
		})
	})
}

// (GET /health)
func (s *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, HealthReply{Status: "ok"})
}

// decode reads a JSON body into form and validates it.
func (s *ServiceHandler) decode(r *http.Request, form any) error {
	if r.Body == nil {
		return validator.NewErrValidation("empty body")
	}
	if err := render.DecodeJSON(r.Body, form); err != nil {
		if errors.Is(err, io.EOF) {
			return validator.NewErrValidation("empty body")
		}
		return validator.NewErrValidation("invalid request body: %s", err)
	}
	return s.validator.Struct(form)
}

func workspaceID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, validator.NewErrValidation("invalid workspace id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// renderError writes err with the status matching its type. Unknown errors are logged and hidden.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound        *service.ErrResourceNotFound
		catalogNotFound *service.ErrCatalogEntryNotFound
		invalidInput    *service.ErrInvalidInput
		invalidForm     *validator.ErrValidation
	)

	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.As(err, &notFound), errors.As(err, &catalogNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, &invalidInput), errors.As(err, &invalidForm):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		zap.S().Named("handlers").Errorw("request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestid.FromRequest(r), "error", err)
	}

	render.Status(r, status)
	_ = render.Render(w, r, ErrorReply{Message: message, RequestID: requestid.FromRequest(r)})
}

func renderJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
