package glpi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
)

// Range is an inclusive, zero based row window.
type Range struct {
	Start int
	End   int
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// CountOnly asks GLPI for totalcount and no rows.
var CountOnly = Range{Start: 0, End: 0}

// RowsUpTo returns the window 0..total-1, capped at MaxRowsPerRequest rows.
func RowsUpTo(total int) Range {
	if total <= 0 {
		return CountOnly
	}
	end := total - 1
	if end > MaxRowsPerRequest-1 {
		end = MaxRowsPerRequest - 1
	}
	return Range{Start: 0, End: end}
}

// RowQuery describes a search that returns rows.
type RowQuery struct {
	ItemType      string
	Criteria      Criteria
	DisplayFields []string
	Range         Range
	UIDCols       bool
	SortField     string
	SortDesc      bool
}

// Count returns totalcount for the search. A missing or non numeric
// totalcount reads as 0.
func (c *Client) Count(ctx context.Context, s Session, itemType string, criteria Criteria) (int, error) {
	values := url.Values{}
	values.Set("range", CountOnly.String())
	criteria.Encode(values)

	body, err := c.get(ctx, s, "count "+itemType, "/search/"+itemType, values)
	if err != nil {
		return 0, err
	}

	var res struct {
		TotalCount any `json:"totalcount"`
	}
	if err := decode(body, &res); err != nil {
		return 0, &SearchError{Op: "count " + itemType, Err: err}
	}
	return toInt(res.TotalCount), nil
}

// SearchRows returns the data rows of the search.
func (c *Client) SearchRows(ctx context.Context, s Session, q RowQuery) ([]Row, error) {
	op := "search " + q.ItemType

	values := url.Values{}
	values.Set("range", q.Range.String())
	if q.UIDCols {
		values.Set("uid_cols", "1")
	} else {
		values.Set("uid_cols", "0")
	}
	for i, f := range q.DisplayFields {
		values.Set(fmt.Sprintf("forcedisplay[%d]", i), f)
	}
	if q.SortField != "" {
		values.Set("sort", q.SortField)
		if q.SortDesc {
			values.Set("order", "DESC")
		} else {
			values.Set("order", "ASC")
		}
	}
	q.Criteria.Encode(values)

	body, err := c.get(ctx, s, op, "/search/"+q.ItemType, values)
	if err != nil {
		return nil, err
	}

	var res struct {
		Data json.RawMessage `json:"data"`
	}
	if err := decode(body, &res); err != nil {
		return nil, &SearchError{Op: op, Err: err}
	}

	rows := []Row{}
	if len(res.Data) == 0 {
		return rows, nil
	}
	// GLPI sends data as an object or omits it when nothing matched
	if err := decode(res.Data, &rows); err != nil || rows == nil {
		return []Row{}, nil
	}
	return rows, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, s Session, itemType string, id int) (Row, error) {
	op := "get " + itemType
	body, err := c.get(ctx, s, op, "/"+itemType+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	var row Row
	if err := decode(body, &row); err != nil {
		return nil, &SearchError{Op: op, Err: err}
	}
	return row, nil
}

func (c *Client) get(ctx context.Context, s Session, op, path string, values url.Values) ([]byte, error) {
	endpoint := s.endpoint(path)
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &SearchError{Op: op, Err: err}
	}
	req.Header = s.Headers()

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(op, err)
	}

	if err := statusError(op, res.StatusCode); err != nil {
		return nil, err
	}
	return body, nil
}

func statusError(op string, status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Op: op, StatusCode: status}
	case status < 200 || status > 299:
		return &SearchError{Op: op, StatusCode: status}
	}
	return nil
}

func transportError(op string, err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &NetworkError{Op: op, Timeout: true, Err: err}
	}
	return &NetworkError{Op: op, Err: err}
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
