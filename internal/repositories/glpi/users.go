package glpi

import (
	"context"
	"strconv"
	"strings"
)

var userDisplayFields = []string{
	strconv.Itoa(FieldUserName),
	strconv.Itoa(FieldUserID),
	strconv.Itoa(FieldUserFirstName),
	strconv.Itoa(FieldUserRealName),
}

// UserNames resolves display names for ids with one batch search, then a
// GetItem per id the batch did not return. Ids that could not be resolved
// are left out of the map.
func (c *Client) UserNames(ctx context.Context, s Session, ids []int) map[int]string {
	names := make(map[int]string, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return names
	}

	criteria := Criteria{}
	for _, id := range ids {
		criteria = criteria.Add(SearchCriterion{
			Field:      strconv.Itoa(FieldUserID),
			SearchType: SearchEquals,
			Value:      strconv.Itoa(id),
			Link:       LinkOr,
		})
	}

	rows, err := c.SearchRows(ctx, s, RowQuery{
		ItemType:      ItemUser,
		Criteria:      criteria,
		DisplayFields: userDisplayFields,
		Range:         RowsUpTo(len(ids)),
	})
	if err == nil {
		for _, row := range rows {
			id, ok := row.Int(strconv.Itoa(FieldUserID), "User.id", "id")
			if !ok {
				continue
			}
			name := displayName(
				row.String(strconv.Itoa(FieldUserFirstName)),
				row.String(strconv.Itoa(FieldUserRealName)),
				row.String(strconv.Itoa(FieldUserName)),
			)
			if name != "" {
				names[id] = name
			}
		}
	}

	for _, id := range ids {
		if _, ok := names[id]; ok {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		item, err := c.GetItem(ctx, s, ItemUser, id)
		if err != nil {
			continue
		}
		if name := displayName(item.String("firstname"), item.String("realname"), item.String("name")); name != "" {
			names[id] = name
		}
	}

	return names
}

func displayName(first, real, login string) string {
	full := strings.TrimSpace(first + " " + real)
	if full != "" {
		return full
	}
	return login
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
