package engine

import (
	"context"
	"io"
	"strconv"

	"glpidashboard/internal/aggregator"
	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
	"glpidashboard/pkg/logger"
)

// Searcher is the GLPI gateway as seen by the use cases.
type Searcher interface {
	aggregator.Counter
	SearchRows(ctx context.Context, s glpi.Session, q glpi.RowQuery) ([]glpi.Row, error)
	UserNames(ctx context.Context, s glpi.Session, ids []int) map[int]string
}

// Config holds the domain settings of the use cases.
type Config struct {
	// ParentGroupID is the GLPI group whose active members (subgroups
	// included) enter the technician ranking.
	ParentGroupID            int
	TopN                     int
	Workers                  int
	TechnicianField          string
	AlternateTechnicianField string
	Levels                   []string
	NewTicketsLimit          int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ParentGroupID:            17,
		TopN:                     20,
		Workers:                  aggregator.DefaultConfig().Workers,
		TechnicianField:          strconv.Itoa(glpi.FieldTechnician),
		AlternateTechnicianField: glpi.AlternateTechnicianField,
		Levels:                   []string{"N1", "N2", "N3", "N4"},
		NewTicketsLimit:          10,
	}
}

// Engine computes the dashboard aggregates.
type Engine struct {
	searcher Searcher
	agg      *aggregator.Aggregator
	config   Config
	log      *logger.Logger
}

// New creates an Engine. Zero fields of cfg take their default.
func New(searcher Searcher, cfg Config, log *logger.Logger) *Engine {
	def := DefaultConfig()
	if cfg.ParentGroupID == 0 {
		cfg.ParentGroupID = def.ParentGroupID
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.TechnicianField == "" {
		cfg.TechnicianField = def.TechnicianField
	}
	if cfg.AlternateTechnicianField == "" {
		cfg.AlternateTechnicianField = def.AlternateTechnicianField
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = def.Levels
	}
	if cfg.NewTicketsLimit <= 0 {
		cfg.NewTicketsLimit = def.NewTicketsLimit
	}
	if log == nil {
		log = logger.NewLogger(logger.Config{Service: "engine", Output: io.Discard})
	}

	return &Engine{
		searcher: searcher,
		agg:      aggregator.New(searcher, aggregator.Config{Workers: cfg.Workers}, log),
		config:   cfg,
		log:      log,
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// DateRange filters tickets by creation date. Filtering only applies when
// both bounds are set.
type DateRange struct {
	Start string
	End   string
}

// Active reports whether the range filters anything.
func (d DateRange) Active() bool {
	return d.Start != "" && d.End != ""
}

func (d DateRange) apply(c glpi.Criteria) glpi.Criteria {
	if !d.Active() {
		return c
	}
	return c.AddDateRange(d.Start, d.End)
}

// statusBuckets maps every status id to its dashboard bucket.
var statusBuckets = map[int]dto.Bucket{
	glpi.StatusNew:        dto.BucketNovos,
	glpi.StatusAssigned:   dto.BucketEmProgresso,
	glpi.StatusPlanned:    dto.BucketEmProgresso,
	glpi.StatusInProgress: dto.BucketPendentes,
	glpi.StatusSolved:     dto.BucketResolvidos,
	glpi.StatusClosed:     dto.BucketResolvidos,
}

// BucketForStatus returns the bucket of a status id.
func BucketForStatus(status int) (dto.Bucket, bool) {
	b, ok := statusBuckets[status]
	return b, ok
}
