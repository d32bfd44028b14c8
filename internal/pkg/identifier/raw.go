package identifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Raw is an identifier decoded from JSON. Legacy clients send employee ids
// as numbers, newer ones as strings; both decode to the same value.
type Raw string

func (r *Raw) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Raw(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*r = Raw(n.String())
	return nil
}

func (r Raw) String() string { return string(r) }

// IsZero reports an empty identifier.
func (r Raw) IsZero() bool { return strings.TrimSpace(string(r)) == "" }
