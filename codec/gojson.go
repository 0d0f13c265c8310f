package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes with github.com/goccy/go-json. Snapshot documents hold only
// numbers and short identifiers, so HTML escaping is skipped; the output is
// still plain JSON that the JSON codec can read back.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.MarshalNoEscape(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.UnmarshalNoEscape(data, v) }

// Name is "go-json".
func (GoJSON) Name() string { return "go-json" }

// Append encodes v onto the end of dst, reusing its capacity.
func (c GoJSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := c.Marshal(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
