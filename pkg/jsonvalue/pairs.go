package jsonvalue

import (
	"github.com/goccy/go-json"

	"github.com/vitalvas/radvalue/pkg/packet"
)

// PairEntry is the JSON form of all values of one attribute.
type PairEntry struct {
	Type  string `json:"type"`
	Value []any  `json:"value"`
	// Mapping holds the enumeration name of each value, or null where the value has none.
	Mapping []any `json:"mapping,omitempty"`
}

// PairObject groups pairs by attribute name, prefixed with "prefix:" when prefix is set.
// Values of repeated attributes are appended in order.
func PairObject(pairs []*packet.Pair, prefix string) (map[string]*PairEntry, error) {
	out := make(map[string]*PairEntry, len(pairs))

	for _, pair := range pairs {
		name := pair.Attr.Name
		if prefix != "" {
			name = prefix + ":" + name
		}

		entry, exists := out[name]
		if !exists {
			entry = &PairEntry{Type: pair.Value.Type().String(), Value: []any{}}
			out[name] = entry
		}

		scalar, err := ToJSON(pair.Value)
		if err != nil {
			return nil, err
		}
		entry.Value = append(entry.Value, scalar)

		if pair.Value.Enum() == nil {
			continue
		}
		// pad for values appended before this attribute gained a mapping
		for len(entry.Mapping) < len(entry.Value)-1 {
			entry.Mapping = append(entry.Mapping, nil)
		}

		var alias any
		if name, ok := pair.Value.EnumName(); ok {
			alias = name
		}
		entry.Mapping = append(entry.Mapping, alias)
	}

	return out, nil
}

// EncodePairs renders pairs as a JSON object keyed by attribute name with sorted keys:
//
//	{"Acct-Status-Type":{"type":"integer","value":[1],"mapping":["Start"]}}
func EncodePairs(pairs []*packet.Pair, prefix string) ([]byte, error) {
	obj, err := PairObject(pairs, prefix)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}
