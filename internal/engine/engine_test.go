package engine_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glpidashboard/internal/engine"
	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
)

// fakeSearcher routes every call to the function fields, recording calls
type fakeSearcher struct {
	count func(itemType string, c glpi.Criteria) (int, error)
	rows  func(q glpi.RowQuery) ([]glpi.Row, error)
	names map[int]string

	mu         sync.Mutex
	countCalls []glpi.Criteria
	nameCalls  [][]int
}

func (f *fakeSearcher) Count(ctx context.Context, s glpi.Session, itemType string, c glpi.Criteria) (int, error) {
	f.mu.Lock()
	f.countCalls = append(f.countCalls, c)
	f.mu.Unlock()
	if f.count == nil {
		return 0, nil
	}
	return f.count(itemType, c)
}

func (f *fakeSearcher) SearchRows(ctx context.Context, s glpi.Session, q glpi.RowQuery) ([]glpi.Row, error) {
	if f.rows == nil {
		return []glpi.Row{}, nil
	}
	return f.rows(q)
}

func (f *fakeSearcher) UserNames(ctx context.Context, s glpi.Session, ids []int) map[int]string {
	f.mu.Lock()
	f.nameCalls = append(f.nameCalls, append([]int(nil), ids...))
	f.mu.Unlock()
	out := map[int]string{}
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out[id] = n
		}
	}
	return out
}

// find returns the value of the first criterion on field, if any
func find(c glpi.Criteria, field int) (glpi.SearchCriterion, bool) {
	for _, sc := range c {
		if sc.Field == strconv.Itoa(field) {
			return sc, true
		}
	}
	return glpi.SearchCriterion{}, false
}

func findName(c glpi.Criteria, field string) (glpi.SearchCriterion, bool) {
	for _, sc := range c {
		if sc.Field == field {
			return sc, true
		}
	}
	return glpi.SearchCriterion{}, false
}

func memberRows(ids ...int) []glpi.Row {
	rows := make([]glpi.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, glpi.Row{"2": id})
	}
	return rows
}

// groupSearcher answers the group member search with ids and counts tickets
// per technician from perTech, on whichever technician field is asked
func groupSearcher(ids []int, perTech map[string]map[int]int) *fakeSearcher {
	return &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			if itemType == glpi.ItemUser {
				return len(ids), nil
			}
			for field, counts := range perTech {
				if sc, ok := findName(c, field); ok {
					id, _ := strconv.Atoi(sc.Value)
					return counts[id], nil
				}
			}
			return 0, nil
		},
		rows: func(q glpi.RowQuery) ([]glpi.Row, error) {
			return memberRows(ids...), nil
		},
	}
}

func TestGenerateTechnicianRanking(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		expected []dto.TechnicianRankingItem
	}{
		{
			name:     "Success - sorted by count desc",
			searcher: groupSearcher([]int{101, 102}, map[string]map[int]int{"5": {101: 5, 102: 9}}),
			expected: []dto.TechnicianRankingItem{
				{ID: 102, Tecnico: "Bruno", Tickets: 9, Nivel: "N/A"},
				{ID: 101, Tecnico: "Ana", Tickets: 5, Nivel: "N/A"},
			},
		},
		{
			name:     "Success - ties keep member order, zero counts dropped",
			searcher: groupSearcher([]int{103, 101, 102}, map[string]map[int]int{"5": {101: 4, 102: 0, 103: 4}}),
			expected: []dto.TechnicianRankingItem{
				{ID: 103, Tecnico: "User ID 103", Tickets: 4, Nivel: "N/A"},
				{ID: 101, Tecnico: "Ana", Tickets: 4, Nivel: "N/A"},
			},
		},
		{
			name:     "Success - alternate technician field",
			searcher: groupSearcher([]int{101, 102}, map[string]map[int]int{"users_id_assign": {101: 1, 102: 2}}),
			expected: []dto.TechnicianRankingItem{
				{ID: 102, Tecnico: "Bruno", Tickets: 2, Nivel: "N/A"},
				{ID: 101, Tecnico: "Ana", Tickets: 1, Nivel: "N/A"},
			},
		},
		{
			name:     "Empty - no tickets on either field",
			searcher: groupSearcher([]int{101, 102}, nil),
			expected: []dto.TechnicianRankingItem{},
		},
		{
			name:     "Empty - no active technicians",
			searcher: groupSearcher(nil, nil),
			expected: []dto.TechnicianRankingItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.searcher.names = map[int]string{101: "Ana", 102: "Bruno"}
			e := engine.New(tt.searcher, engine.Config{}, nil)

			got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateTechnicianRanking_PartialConfigKeepsAlternateField(t *testing.T) {
	searcher := groupSearcher([]int{101, 102}, map[string]map[int]int{"users_id_assign": {101: 3, 102: 1}})
	searcher.names = map[int]string{101: "Ana", 102: "Bruno"}
	e := engine.New(searcher, engine.Config{ParentGroupID: 17, TopN: 20, Workers: 10}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, "users_id_assign", e.Config().AlternateTechnicianField)
	assert.Equal(t, []dto.TechnicianRankingItem{
		{ID: 101, Tecnico: "Ana", Tickets: 3, Nivel: "N/A"},
		{ID: 102, Tecnico: "Bruno", Tickets: 1, Nivel: "N/A"},
	}, got)
}

func TestGenerateTechnicianRanking_GroupFallbackToEquals(t *testing.T) {
	searcher := &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			if itemType == glpi.ItemUser {
				sc, _ := find(c, glpi.FieldUserGroup)
				if sc.SearchType == glpi.SearchUnder {
					return 0, nil
				}
				return 3, nil
			}
			sc, _ := find(c, glpi.FieldTechnician)
			id, _ := strconv.Atoi(sc.Value)
			return id - 200, nil
		},
		rows: func(q glpi.RowQuery) ([]glpi.Row, error) {
			sc, _ := find(q.Criteria, glpi.FieldUserGroup)
			assert.Equal(t, glpi.SearchEquals, sc.SearchType)
			assert.Equal(t, "17", sc.Value)
			assert.Equal(t, glpi.Range{Start: 0, End: 2}, q.Range)
			return memberRows(201, 202, 203), nil
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{203, 202, 201}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestGenerateTechnicianRanking_RowsFallbackToEquals(t *testing.T) {
	searcher := &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			if itemType == glpi.ItemUser {
				return 2, nil
			}
			return 1, nil
		},
		rows: func(q glpi.RowQuery) ([]glpi.Row, error) {
			sc, _ := find(q.Criteria, glpi.FieldUserGroup)
			if sc.SearchType == glpi.SearchUnder {
				return []glpi.Row{}, nil
			}
			return []glpi.Row{{"User.id": "301"}, {"id": 302}, {"2": 301}}, nil
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 301, got[0].ID)
	assert.Equal(t, 302, got[1].ID)
}

func TestGenerateTechnicianRanking_TopNAndNameResolution(t *testing.T) {
	ids := make([]int, 0, 30)
	counts := map[int]int{}
	for i := 1; i <= 30; i++ {
		ids = append(ids, i)
		counts[i] = i
	}
	searcher := groupSearcher(ids, map[string]map[int]int{"5": counts})
	e := engine.New(searcher, engine.Config{TopN: 5}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, 30, got[0].Tickets)
	assert.Equal(t, 26, got[4].Tickets)

	// nomes só para o top N
	require.Len(t, searcher.nameCalls, 1)
	assert.Equal(t, []int{30, 29, 28, 27, 26}, searcher.nameCalls[0])
}

func TestGenerateTechnicianRanking_BestEffortFailures(t *testing.T) {
	searcher := groupSearcher([]int{101, 102}, nil)
	searcher.count = func(itemType string, c glpi.Criteria) (int, error) {
		if itemType == glpi.ItemUser {
			return 2, nil
		}
		sc, _ := find(c, glpi.FieldTechnician)
		if sc.Value == "101" {
			return 0, &glpi.NetworkError{Op: "count", Timeout: true}
		}
		return 7, nil
	}
	searcher.names = map[int]string{102: "Bruno"}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, []dto.TechnicianRankingItem{{ID: 102, Tecnico: "Bruno", Tickets: 7, Nivel: "N/A"}}, got)
}

func TestGenerateTechnicianRanking_GroupSearchFailure(t *testing.T) {
	searcher := &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			return 0, &glpi.AuthError{Op: "count", StatusCode: 401}
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{})

	assert.Nil(t, got)
	assert.True(t, glpi.IsAuth(err))
}

func TestGenerateTechnicianRanking_DateRange(t *testing.T) {
	searcher := groupSearcher([]int{101}, map[string]map[int]int{"5": {101: 1}})
	e := engine.New(searcher, engine.Config{}, nil)

	_, err := e.GenerateTechnicianRanking(context.Background(), glpi.Session{}, engine.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	require.NoError(t, err)

	var ticketCalls []glpi.Criteria
	for _, c := range searcher.countCalls {
		if _, ok := find(c, glpi.FieldTechnician); ok {
			ticketCalls = append(ticketCalls, c)
		}
	}
	require.Len(t, ticketCalls, 1)
	c := ticketCalls[0]
	require.Len(t, c, 3)
	assert.Equal(t, glpi.SearchMoreThan, c[1].SearchType)
	assert.Equal(t, "2024-01-01", c[1].Value)
	assert.Equal(t, "2024-01-31 23:59:59", c[2].Value)
}

// levelSearcher fails the count of failLevel with status failStatus
func levelSearcher(perLevel map[string]map[int]int, failLevel, failStatus string, failWith error) *fakeSearcher {
	return &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			level, _ := find(c, glpi.FieldLevel)
			status, _ := find(c, glpi.FieldStatus)
			if failWith != nil && level.Value == failLevel && status.Value == failStatus {
				return 0, failWith
			}
			st, _ := strconv.Atoi(status.Value)
			return perLevel[level.Value][st], nil
		},
	}
}

func TestGenerateLevelStats(t *testing.T) {
	searcher := levelSearcher(map[string]map[int]int{
		"N1": {1: 2, 2: 1, 3: 1, 4: 0, 5: 3, 6: 1},
		"N3": {4: 5},
	}, "", "", nil)
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateLevelStats(context.Background(), glpi.Session{}, engine.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, dto.LevelStats{
		"N1": {Novos: 2, EmProgresso: 2, Pendentes: 0, Resolvidos: 4, Total: 8},
		"N2": {},
		"N3": {Pendentes: 5, Total: 5},
		"N4": {},
	}, got)
	assert.Len(t, searcher.countCalls, 24)

	for _, c := range searcher.countCalls {
		level, ok := find(c, glpi.FieldLevel)
		require.True(t, ok)
		assert.Equal(t, glpi.SearchContains, level.SearchType)
		_, hasDate := find(c, glpi.FieldCreated)
		assert.False(t, hasDate)
	}
}

func TestGenerateLevelStats_StrictFailure(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "Auth failure", err: &glpi.AuthError{Op: "count", StatusCode: 403}, check: glpi.IsAuth},
		{name: "Timeout", err: &glpi.NetworkError{Op: "count", Timeout: true}, check: glpi.IsTimeout},
		{name: "Search failure", err: &glpi.SearchError{Op: "count", StatusCode: 500}, check: glpi.IsSearch},
		{name: "Unexpected error", err: errors.New("panic-ish"), check: glpi.IsSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := levelSearcher(map[string]map[int]int{"N1": {1: 1}}, "N2", "5", tt.err)
			e := engine.New(searcher, engine.Config{}, nil)

			got, err := e.GenerateLevelStats(context.Background(), glpi.Session{}, engine.DateRange{})

			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestGenerateGeneralStats(t *testing.T) {
	searcher := &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			status, _ := find(c, glpi.FieldStatus)
			st, _ := strconv.Atoi(status.Value)
			return map[int]int{1: 10, 2: 3, 3: 2, 4: 7, 5: 20, 6: 5}[st], nil
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GenerateGeneralStats(context.Background(), glpi.Session{}, engine.DateRange{Start: "2024-02-01", End: "2024-02-29"})

	require.NoError(t, err)
	assert.Equal(t, dto.GeneralStats{Novos: 10, EmProgresso: 5, Pendentes: 7, Resolvidos: 25}, got)
	require.Len(t, searcher.countCalls, 6)
	for _, c := range searcher.countCalls {
		_, hasDate := find(c, glpi.FieldCreated)
		assert.True(t, hasDate)
	}
}

func TestGenerateGeneralStats_HalfOpenRangeIgnored(t *testing.T) {
	searcher := &fakeSearcher{}
	e := engine.New(searcher, engine.Config{}, nil)

	_, err := e.GenerateGeneralStats(context.Background(), glpi.Session{}, engine.DateRange{Start: "2024-02-01"})

	require.NoError(t, err)
	for _, c := range searcher.countCalls {
		assert.Len(t, c, 1)
	}
}

func TestGenerateGeneralStats_Failure(t *testing.T) {
	searcher := &fakeSearcher{
		count: func(itemType string, c glpi.Criteria) (int, error) {
			status, _ := find(c, glpi.FieldStatus)
			if status.Value == "4" {
				return 0, &glpi.NetworkError{Op: "count"}
			}
			return 1, nil
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	_, err := e.GenerateGeneralStats(context.Background(), glpi.Session{}, engine.DateRange{})

	assert.True(t, glpi.IsNetwork(err))
	assert.False(t, glpi.IsTimeout(err))
}

func TestGetNewTickets(t *testing.T) {
	searcher := &fakeSearcher{
		rows: func(q glpi.RowQuery) ([]glpi.Row, error) {
			assert.Equal(t, glpi.ItemTicket, q.ItemType)
			assert.Equal(t, []string{"1", "2", "4", "5", "6", "71", "15"}, q.DisplayFields)
			assert.Equal(t, glpi.Range{Start: 0, End: 9}, q.Range)
			assert.Equal(t, "2", q.SortField)
			assert.True(t, q.SortDesc)
			status, _ := find(q.Criteria, glpi.FieldStatus)
			assert.Equal(t, "1", status.Value)

			return []glpi.Row{
				{"2": 10, "1": "Impressora", "4": []any{"7"}, "15": "2024-03-01 08:15:00"},
				{"2": 12, "1": "", "4": "8", "15": "2024-03-02"},
				{"2": 11, "1": "Rede", "4": nil, "15": "invalid-date-value"},
			}, nil
		},
		names: map[int]string{7: "João Souza"},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	got, err := e.GetNewTickets(context.Background(), glpi.Session{})

	require.NoError(t, err)
	assert.Equal(t, []dto.NewTicketItem{
		{ID: 12, Titulo: "Sem título", Solicitante: "Não informado", Data: "2024-03-02"},
		{ID: 11, Titulo: "Rede", Solicitante: "Não informado", Data: "invalid-da"},
		{ID: 10, Titulo: "Impressora", Solicitante: "João Souza", Data: "01/03/2024 08:15"},
	}, got)
	require.Len(t, searcher.nameCalls, 1)
	assert.ElementsMatch(t, []int{8, 7}, searcher.nameCalls[0])
}

func TestGetNewTickets_Failure(t *testing.T) {
	searcher := &fakeSearcher{
		rows: func(q glpi.RowQuery) ([]glpi.Row, error) {
			return nil, errors.New("decode")
		},
	}
	e := engine.New(searcher, engine.Config{}, nil)

	_, err := e.GetNewTickets(context.Background(), glpi.Session{})
	assert.True(t, glpi.IsSearch(err))
}

func TestBucketForStatus(t *testing.T) {
	expected := map[int]dto.Bucket{
		1: dto.BucketNovos, 2: dto.BucketEmProgresso, 3: dto.BucketEmProgresso,
		4: dto.BucketPendentes, 5: dto.BucketResolvidos, 6: dto.BucketResolvidos,
	}
	for status, bucket := range expected {
		got, ok := engine.BucketForStatus(status)
		assert.True(t, ok)
		assert.Equal(t, bucket, got)
	}
	_, ok := engine.BucketForStatus(99)
	assert.False(t, ok)
	assert.Equal(t, "1,2,3,4,5,6", engine.StatusFingerprint())
}
