package glpi

import (
	"fmt"
	"net/url"
	"strconv"
)

// SearchType is the comparison applied by a criterion.
type SearchType string

const (
	SearchEquals   SearchType = "equals"
	SearchContains SearchType = "contains"
	SearchMoreThan SearchType = "morethan"
	SearchLessThan SearchType = "lessthan"
	SearchUnder    SearchType = "under"
)

// Link joins a criterion to the previous one.
type Link string

const (
	LinkNone Link = ""
	LinkAnd  Link = "AND"
	LinkOr   Link = "OR"
)

// SearchCriterion is one filter condition of a GLPI search.
type SearchCriterion struct {
	Field      string
	SearchType SearchType
	Value      string
	Link       Link
}

// Criteria is an ordered list of criteria. The position of each entry is its
// criteria[i] index on the wire, so entries are only ever appended.
//
// Every Add method returns a new slice and leaves the receiver untouched, so
// a shared base (e.g. a date range) can be extended from many goroutines.
type Criteria []SearchCriterion

// NextIndex returns the index the next appended criterion will get.
func (c Criteria) NextIndex() int {
	return len(c)
}

// Add appends sc. The first criterion never carries a link; any later one
// without a link is joined with AND.
func (c Criteria) Add(sc SearchCriterion) Criteria {
	if sc.Field == "" {
		panic("glpi: criterion without field")
	}
	if c.NextIndex() == 0 {
		sc.Link = LinkNone
	} else if sc.Link == LinkNone {
		sc.Link = LinkAnd
	}

	out := make(Criteria, len(c), len(c)+1)
	copy(out, c)
	return append(out, sc)
}

// AddFieldEquals appends an equals criterion on field.
func (c Criteria) AddFieldEquals(field, value string) Criteria {
	return c.Add(SearchCriterion{Field: field, SearchType: SearchEquals, Value: value})
}

// AddStatus appends a status equals criterion.
func (c Criteria) AddStatus(statusID int) Criteria {
	return c.AddFieldEquals(strconv.Itoa(FieldStatus), strconv.Itoa(statusID))
}

// AddDateRange appends a creation date window. A bare YYYY-MM-DD end is
// pushed to the last second of that day so the whole end day is included.
func (c Criteria) AddDateRange(start, end string) Criteria {
	field := strconv.Itoa(FieldCreated)
	return c.
		Add(SearchCriterion{Field: field, SearchType: SearchMoreThan, Value: start, Link: LinkAnd}).
		Add(SearchCriterion{Field: field, SearchType: SearchLessThan, Value: normalizeEnd(end), Link: LinkAnd})
}

func normalizeEnd(end string) string {
	if len(end) > 10 {
		return end
	}
	return end + " 23:59:59"
}

// Encode flattens the criteria into GLPI query parameters.
func (c Criteria) Encode(values url.Values) {
	for i, sc := range c {
		prefix := fmt.Sprintf("criteria[%d]", i)
		if i > 0 {
			link := sc.Link
			if link == LinkNone {
				link = LinkAnd
			}
			values.Set(prefix+"[link]", string(link))
		}
		values.Set(prefix+"[field]", sc.Field)
		values.Set(prefix+"[searchtype]", string(sc.SearchType))
		values.Set(prefix+"[value]", sc.Value)
	}
}
