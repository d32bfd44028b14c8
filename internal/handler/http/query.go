package http

import (
	"net/url"
	"strconv"
	"strings"
)

// queryParam returns a trimmed query value, nil when absent or blank.
func queryParam(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func queryInt(q url.Values, key string, def int) int {
	if v := q.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
