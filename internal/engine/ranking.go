package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"glpidashboard/internal/aggregator"
	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
)

// GenerateTechnicianRanking ranks the active technicians of the parent group
// by ticket count, highest first, and returns the top N.
func (e *Engine) GenerateTechnicianRanking(ctx context.Context, s glpi.Session, dr DateRange) ([]dto.TechnicianRankingItem, error) {
	ranking := []dto.TechnicianRankingItem{}

	ids, err := e.groupMembers(ctx, s)
	if err != nil {
		return nil, glpi.Classify(err, "ranking")
	}
	if len(ids) == 0 {
		e.log.Info("no active technicians in group", map[string]interface{}{"group_id": e.config.ParentGroupID})
		return ranking, nil
	}

	counts, err := e.countByTechnician(ctx, s, ids, e.config.TechnicianField, dr)
	if err != nil {
		return nil, glpi.Classify(err, "ranking")
	}

	alt := e.config.AlternateTechnicianField
	if counts.Total() == 0 && alt != "" && alt != e.config.TechnicianField {
		e.log.Info("technician field returned no tickets, retrying with alternate field", map[string]interface{}{
			"field":     e.config.TechnicianField,
			"alternate": alt,
		})
		counts, err = e.countByTechnician(ctx, s, ids, alt, dr)
		if err != nil {
			return nil, glpi.Classify(err, "ranking")
		}
	}
	if counts.Total() == 0 {
		return ranking, nil
	}

	type ranked struct {
		id    int
		count int
	}
	// ids keeps member order, SliceStable keeps it among equal counts
	rows := make([]ranked, 0, len(ids))
	for _, id := range ids {
		if n := counts.Counts[id]; n > 0 {
			rows = append(rows, ranked{id: id, count: n})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].count > rows[j].count
	})
	if len(rows) > e.config.TopN {
		rows = rows[:e.config.TopN]
	}

	topIDs := make([]int, len(rows))
	for i, r := range rows {
		topIDs[i] = r.id
	}
	names := e.searcher.UserNames(ctx, s, topIDs)

	for _, r := range rows {
		name, ok := names[r.id]
		if !ok || name == "" {
			name = fmt.Sprintf("User ID %d", r.id)
		}
		ranking = append(ranking, dto.TechnicianRankingItem{
			ID:      r.id,
			Tecnico: name,
			Tickets: r.count,
			Nivel:   "N/A",
		})
	}

	return ranking, nil
}

func (e *Engine) countByTechnician(ctx context.Context, s glpi.Session, ids []int, field string, dr DateRange) (*aggregator.Result[int], error) {
	queries := make([]aggregator.Query[int], 0, len(ids))
	for _, id := range ids {
		queries = append(queries, aggregator.Query[int]{
			Key:      id,
			ItemType: glpi.ItemTicket,
			Criteria: dr.apply(glpi.Criteria{}.AddFieldEquals(field, strconv.Itoa(id))),
		})
	}
	return aggregator.Run(ctx, e.agg, s, queries, aggregator.BestEffort)
}

// groupMembers returns the ids of active users under the parent group.
// Deployments without hierarchical group search answer nothing for "under",
// so an empty answer is retried with "equals".
func (e *Engine) groupMembers(ctx context.Context, s glpi.Session) ([]int, error) {
	criteria := func(st glpi.SearchType) glpi.Criteria {
		return glpi.Criteria{}.
			Add(glpi.SearchCriterion{
				Field:      strconv.Itoa(glpi.FieldUserGroup),
				SearchType: st,
				Value:      strconv.Itoa(e.config.ParentGroupID),
			}).
			AddFieldEquals(strconv.Itoa(glpi.FieldUserActive), "1")
	}
	under, equals := criteria(glpi.SearchUnder), criteria(glpi.SearchEquals)

	used := under
	total, err := e.searcher.Count(ctx, s, glpi.ItemUser, under)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		used = equals
		total, err = e.searcher.Count(ctx, s, glpi.ItemUser, equals)
		if err != nil {
			return nil, err
		}
		if total <= 0 {
			return nil, nil
		}
	}

	query := glpi.RowQuery{
		ItemType:      glpi.ItemUser,
		Criteria:      used,
		DisplayFields: []string{strconv.Itoa(glpi.FieldUserID)},
		Range:         glpi.RowsUpTo(total),
	}
	rows, err := e.searcher.SearchRows(ctx, s, query)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && used[0].SearchType == glpi.SearchUnder {
		query.Criteria = equals
		if rows, err = e.searcher.SearchRows(ctx, s, query); err != nil {
			return nil, err
		}
	}

	seen := make(map[int]struct{}, len(rows))
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		id, ok := row.Int(strconv.Itoa(glpi.FieldUserID), "User.id", "id")
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
