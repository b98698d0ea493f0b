package engine

import (
	"context"
	"strconv"

	"glpidashboard/internal/aggregator"
	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
)

type levelStatus struct {
	Level  string
	Status int
}

// GenerateLevelStats counts tickets per level and status bucket. Any failed
// count fails the whole call.
func (e *Engine) GenerateLevelStats(ctx context.Context, s glpi.Session, dr DateRange) (dto.LevelStats, error) {
	queries := make([]aggregator.Query[levelStatus], 0, len(e.config.Levels)*len(glpi.AllStatuses))
	for _, level := range e.config.Levels {
		base := glpi.Criteria{}.Add(glpi.SearchCriterion{
			Field:      strconv.Itoa(glpi.FieldLevel),
			SearchType: glpi.SearchContains,
			Value:      level,
		})
		for _, status := range glpi.AllStatuses {
			queries = append(queries, aggregator.Query[levelStatus]{
				Key:      levelStatus{Level: level, Status: status},
				ItemType: glpi.ItemTicket,
				Criteria: dr.apply(base.AddStatus(status)),
			})
		}
	}

	res, err := aggregator.Run(ctx, e.agg, s, queries, aggregator.Strict)
	if err != nil {
		return nil, glpi.Classify(err, "level stats")
	}

	stats := make(dto.LevelStats, len(e.config.Levels))
	for _, level := range e.config.Levels {
		stats[level] = dto.LevelDetail{}
	}
	for key, n := range res.Counts {
		if b, ok := BucketForStatus(key.Status); ok {
			stats.Add(key.Level, b, n)
		}
	}
	return stats, nil
}

// GenerateGeneralStats counts tickets per status bucket.
func (e *Engine) GenerateGeneralStats(ctx context.Context, s glpi.Session, dr DateRange) (dto.GeneralStats, error) {
	queries := make([]aggregator.Query[int], 0, len(glpi.AllStatuses))
	for _, status := range glpi.AllStatuses {
		queries = append(queries, aggregator.Query[int]{
			Key:      status,
			ItemType: glpi.ItemTicket,
			Criteria: dr.apply(glpi.Criteria{}.AddStatus(status)),
		})
	}

	var stats dto.GeneralStats
	res, err := aggregator.Run(ctx, e.agg, s, queries, aggregator.Strict)
	if err != nil {
		return stats, glpi.Classify(err, "general stats")
	}
	for status, n := range res.Counts {
		if b, ok := BucketForStatus(status); ok {
			stats.Add(b, n)
		}
	}
	return stats, nil
}

// StatusFingerprint identifies the status set the general stats cover, for
// cache keys.
func StatusFingerprint() string {
	out := ""
	for i, st := range glpi.AllStatuses {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(st)
	}
	return out
}
