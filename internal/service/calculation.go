package service

import (
	"context"
	"errors"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/autonomy/calculators"
	"github.com/powerguard/autonomy-planner/pkg/metrics"
	"github.com/powerguard/autonomy-planner/pkg/requestid"
	"go.uber.org/zap"
)

// Calculation is the outcome of one run of a model over a plan.
type Calculation struct {
	Model       string
	Input       autonomy.Input
	Result      autonomy.Result
	Summary     autonomy.Summary
	Connections []autonomy.ConnectionReport
}

// CalculationService runs plans through the autonomy Engine. Topology results also carry the
// status of every connection.
type CalculationService struct {
	engine       *autonomy.Engine
	defaultModel string
	logger       *zap.SugaredLogger
}

// NewCalculationService creates a CalculationService with the topology and aggregate models registered.
// An unknown defaultModel falls back to the first registered model.
func NewCalculationService(defaultModel string) *CalculationService {
	engine := autonomy.NewEngine()
	engine.Register(calculators.NewTopology())
	engine.Register(calculators.NewAggregate())

	logger := zap.S().Named("calculation_service")
	if _, err := engine.Calculator(defaultModel); err != nil {
		logger.Warnw("falling back to the default calculation model", "requested", defaultModel, "error", err)
		defaultModel = ""
	}

	return &CalculationService{
		engine:       engine,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Models lists the registered model names in registration order.
func (c *CalculationService) Models() []string {
	return c.engine.Names()
}

func (c *CalculationService) DefaultModel() string {
	if c.defaultModel != "" {
		return c.defaultModel
	}
	names := c.engine.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Calculate validates in and runs it through modelName, or the default model when modelName is empty.
func (c *CalculationService) Calculate(ctx context.Context, in autonomy.Input, modelName string) (*Calculation, error) {
	if modelName == "" {
		modelName = c.DefaultModel()
	}
	logger := c.logger.With("request_id", requestid.FromContext(ctx), "model", modelName)

	if err := in.Validate(); err != nil {
		logger.Debugw("rejected calculation input", "error", err)
		return nil, NewErrInvalidInput(err)
	}

	res, err := c.engine.Run(modelName, in)
	if err != nil {
		if errors.Is(err, autonomy.ErrUnknownModel) {
			return nil, NewErrInvalidInput(err)
		}
		return nil, err
	}

	calc := c.newCalculation(modelName, in, res)
	logger.Debugw("calculated autonomy",
		"sources", len(in.Sources),
		"devices", len(in.Devices),
		"total_runtime_hours", res.TotalRuntimeHours,
		"warnings", len(res.Warnings))

	return calc, nil
}

// Compare validates in and runs it through every registered model, in registration order.
func (c *CalculationService) Compare(ctx context.Context, in autonomy.Input) ([]*Calculation, error) {
	if err := in.Validate(); err != nil {
		c.logger.Debugw("rejected comparison input", "request_id", requestid.FromContext(ctx), "error", err)
		return nil, NewErrInvalidInput(err)
	}

	results := c.engine.RunAll(in)
	out := make([]*Calculation, 0, len(results))
	for _, name := range c.engine.Names() {
		out = append(out, c.newCalculation(name, in, results[name]))
	}
	return out, nil
}

// newCalculation wraps a result and records its metrics. Connection statuses compare per-source
// runtimes against the wiring, so only the topology model carries them.
func (c *CalculationService) newCalculation(modelName string, in autonomy.Input, res autonomy.Result) *Calculation {
	var reports []autonomy.ConnectionReport
	if modelName == calculators.TopologyModel {
		reports = autonomy.ClassifyConnections(in, res)
		for _, r := range reports {
			metrics.IncreaseConnectionStatusMetric(r.Status.String())
		}
	}
	metrics.ObserveCalculation(modelName, res.TotalRuntimeHours, calculators.CountOverloads(res.Warnings))

	return &Calculation{
		Model:       modelName,
		Input:       in,
		Result:      res,
		Summary:     autonomy.Summarize(res, in.Scenario),
		Connections: reports,
	}
}
