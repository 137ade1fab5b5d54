package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a scalar field from a source record. Source files are hand-exported
// and mix strings with numbers (e.g. "ejercicioFiscal": 2023), so any JSON
// scalar is accepted and kept in its textual form. null, false, numeric zero,
// objects and arrays decode to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f':
		b, err := strconv.ParseBool(string(data))
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", data, err)
		}
		// false is falsy in the source format and collapses to empty
		if b {
			*t = "true"
		} else {
			*t = ""
		}
	case '{', '[':
		*t = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			*t = ""
			return nil
		}
		*t = Text(n.String())
	}
	return nil
}

// String returns the text value
func (t Text) String() string {
	return string(t)
}

// Or returns t, or fallback when t is empty
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}
