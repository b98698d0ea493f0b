// Package cache keeps computed dashboard responses for a short TTL so the
// aggregator does not run again on every request.
package cache

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Store is a key value store with per entry TTL. Get never fails: an absent
// key, an expired entry and a backend error all read as a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Param is one query parameter taking part in a cache key.
type Param struct {
	Name  string
	Value string
}

// P builds a Param.
func P(name, value string) Param {
	return Param{Name: name, Value: value}
}

// Key builds "endpoint|name=value|..." in the order given. Names and values
// are query escaped, so no value can forge a separator.
func Key(endpoint string, params ...Param) string {
	var b strings.Builder
	b.WriteString(url.QueryEscape(endpoint))
	for _, p := range params {
		b.WriteByte('|')
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
