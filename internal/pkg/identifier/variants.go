// Package identifier normalises employee identifiers that are stored with
// mixed encodings: canonical UUIDs on new rows, raw strings and integers on
// legacy rows.
package identifier

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Variants returns every string form raw could be stored as.
// The result is sorted, de-duplicated and never contains the empty string.
// An empty result means nothing is matchable, not "match everything".
func Variants(raw any) []string {
	s, ok := stringForm(raw)
	if !ok {
		return []string{}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}

	set := map[string]struct{}{s: {}}

	if u, err := uuid.Parse(s); err == nil {
		canonical := u.String()
		set[canonical] = struct{}{}
		set[strings.ReplaceAll(canonical, "-", "")] = struct{}{}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		set[strconv.FormatInt(n, 10)] = struct{}{}
	} else if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		set[strconv.FormatUint(n, 10)] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether a and b share at least one variant.
func Matches(a, b any) bool {
	left := Variants(a)
	if len(left) == 0 {
		return false
	}
	for _, r := range Variants(b) {
		if contains(left, r) {
			return true
		}
	}
	return false
}

// Contains reports whether raw shares a variant with any of allowed.
func Contains(allowed []string, raw any) bool {
	for _, v := range Variants(raw) {
		if slices.Contains(allowed, v) {
			return true
		}
	}
	return false
}

func contains(sorted []string, v string) bool {
	i := sort.SearchStrings(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

func stringForm(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case []byte:
		return string(v), true
	case uuid.UUID:
		if v == uuid.Nil {
			return "", false
		}
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', 0, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
