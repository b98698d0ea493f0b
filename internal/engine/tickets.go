package engine

import (
	"context"
	"sort"
	"strconv"
	"time"

	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
)

var newTicketFields = []string{
	strconv.Itoa(glpi.FieldTicketTitle),
	strconv.Itoa(glpi.FieldTicketID),
	strconv.Itoa(glpi.FieldTicketRequester),
	strconv.Itoa(glpi.FieldTechnician),
	strconv.Itoa(glpi.FieldTicketRecipient),
	strconv.Itoa(glpi.FieldTicketLastUpdater),
	strconv.Itoa(glpi.FieldCreated),
}

// GetNewTickets returns the most recent tickets with status new, newest
// first.
func (e *Engine) GetNewTickets(ctx context.Context, s glpi.Session) ([]dto.NewTicketItem, error) {
	idField := strconv.Itoa(glpi.FieldTicketID)

	rows, err := e.searcher.SearchRows(ctx, s, glpi.RowQuery{
		ItemType:      glpi.ItemTicket,
		Criteria:      glpi.Criteria{}.AddStatus(glpi.StatusNew),
		DisplayFields: newTicketFields,
		Range:         glpi.Range{Start: 0, End: e.config.NewTicketsLimit - 1},
		SortField:     idField,
		SortDesc:      true,
	})
	if err != nil {
		return nil, glpi.Classify(err, "new tickets")
	}

	type ticket struct {
		id  int
		row glpi.Row
	}
	tickets := make([]ticket, 0, len(rows))
	for _, row := range rows {
		id, _ := row.Int(idField)
		tickets = append(tickets, ticket{id: id, row: row})
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].id > tickets[j].id
	})
	if len(tickets) > e.config.NewTicketsLimit {
		tickets = tickets[:e.config.NewTicketsLimit]
	}

	requesterField := strconv.Itoa(glpi.FieldTicketRequester)
	requesterIDs := make([]int, 0, len(tickets))
	for _, t := range tickets {
		if rid, ok := t.row.FirstID(requesterField); ok {
			requesterIDs = append(requesterIDs, rid)
		}
	}
	names := e.searcher.UserNames(ctx, s, requesterIDs)

	items := make([]dto.NewTicketItem, 0, len(tickets))
	for _, t := range tickets {
		solicitante := "Não informado"
		if rid, ok := t.row.FirstID(requesterField); ok {
			if name, found := names[rid]; found {
				solicitante = name
			}
		}

		titulo := t.row.String(strconv.Itoa(glpi.FieldTicketTitle))
		if titulo == "" {
			titulo = "Sem título"
		}

		items = append(items, dto.NewTicketItem{
			ID:          t.id,
			Titulo:      titulo,
			Solicitante: solicitante,
			Data:        formatTicketDate(t.row.String(strconv.Itoa(glpi.FieldCreated))),
		})
	}
	return items, nil
}

// formatTicketDate turns GLPI's "2006-01-02 15:04:05" into "02/01/2006 15:04".
// Anything else is cut to its first 10 characters.
func formatTicketDate(raw string) string {
	if t, err := time.Parse(time.DateTime, raw); err == nil {
		return t.Format("02/01/2006 15:04")
	}
	if len(raw) > 10 {
		return raw[:10]
	}
	return raw
}
