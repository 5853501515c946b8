package fallback

import (
	"log/slog"

	"github.com/rickgao/debtwatch/internal/metrics"
	"github.com/rickgao/debtwatch/internal/model"
)

// Tier names where a substitute came from.
const (
	TierMemory = "memory"
	TierStatic = "static"
	TierNone   = "none"
)

// Result is the substitute for one dataset. Exactly one of Series, Table or
// Indicators is populated for a known dataset; all are empty otherwise.
type Result struct {
	Dataset    model.DatasetID
	Tier       string
	Series     model.TimeSeries
	Table      []model.CountryDebtEntry
	Indicators map[string]model.TimeSeries
}

// IsEmpty reports whether the result carries no data.
func (r Result) IsEmpty() bool {
	return r.Series.Len() == 0 && len(r.Table) == 0 && len(r.Indicators) == 0
}

// supplier produces the substitute for one dataset given the in-memory dataset.
type supplier func(current model.CanonicalDataset) Result

// Resolver maps dataset identifiers to typed fallback suppliers.
type Resolver struct {
	suppliers map[model.DatasetID]supplier
	logger    *slog.Logger
}

// NewResolver creates a Resolver with the embedded reference snapshots.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		suppliers: map[model.DatasetID]supplier{
			model.DatasetDebt:               liveSeries(model.DatasetDebt, datasetDebt),
			model.DatasetGDPRatio:           liveSeries(model.DatasetGDPRatio, datasetGDPRatio),
			model.DatasetPopulation:         liveSeries(model.DatasetPopulation, datasetPopulation),
			model.DatasetEUComparison:       euComparison,
			model.DatasetEconomicIndicators: economicIndicators,
		},
		logger: logger,
	}
}

// Fallback returns the substitute for a dataset. Unknown identifiers yield
// an empty Result; Fallback never panics.
func (r *Resolver) Fallback(id model.DatasetID, current model.CanonicalDataset) Result {
	supply, ok := r.suppliers[id]
	if !ok {
		r.logger.Warn("no fallback for dataset", "dataset", id)
		return Result{Dataset: id, Tier: TierNone}
	}

	res := supply(current)
	metrics.RecordFallback(string(id), res.Tier)
	r.logger.Debug("fallback resolved",
		"dataset", id,
		"tier", res.Tier,
	)
	return res
}

// FallbackKey resolves a raw dataset key. Unknown keys yield an empty Result.
func (r *Resolver) FallbackKey(key string, current model.CanonicalDataset) Result {
	id, err := model.ParseDatasetID(key)
	if err != nil {
		r.logger.Warn("rejected fallback key", "key", key, "error", err)
		return Result{Tier: TierNone}
	}
	return r.Fallback(id, current)
}

// StaticSnapshot returns the complete embedded reference dataset.
// PerCapita is left empty; the pipeline derives it.
func StaticSnapshot() model.CanonicalDataset {
	return model.CanonicalDataset{
		Debt:         staticDebt(),
		GDPRatio:     staticGDPRatio(),
		Population:   staticPopulation(),
		EUComparison: staticEUComparison(),
		Indicators:   staticIndicators(),
	}
}

func liveSeries(id model.DatasetID, static func() model.TimeSeries) supplier {
	return func(current model.CanonicalDataset) Result {
		if s := current.SeriesFor(id); s.Len() > 0 {
			return Result{Dataset: id, Tier: TierMemory, Series: s.Clone()}
		}
		return Result{Dataset: id, Tier: TierStatic, Series: static()}
	}
}

func euComparison(model.CanonicalDataset) Result {
	return Result{
		Dataset: model.DatasetEUComparison,
		Tier:    TierStatic,
		Table:   datasetEUComparison(),
	}
}

func economicIndicators(model.CanonicalDataset) Result {
	return Result{
		Dataset:    model.DatasetEconomicIndicators,
		Tier:       TierStatic,
		Indicators: datasetIndicators(),
	}
}
