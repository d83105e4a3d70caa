package fetcher

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Record is one raw station entry from the feed. Field values may be missing
// or string-typed; normalization happens downstream.
type Record map[string]any

// envelope is the object form of the feed response.
type envelope struct {
	Records []Record `json:"records"`
}

// DecodeRecords parses a feed body. The API returns either a bare array of
// records or an object wrapping them under "records"; both shapes normalize
// to one list. Anything else is an error naming what was received.
func DecodeRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, eris.New("fetcher: empty response body")
	}

	switch trimmed[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, eris.Wrap(err, "fetcher: decode record array")
		}
		return records, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, eris.Wrap(err, "fetcher: decode record envelope")
		}
		if env.Records == nil {
			return nil, eris.New(`fetcher: object response has no "records" array`)
		}
		return env.Records, nil
	default:
		return nil, eris.Errorf("fetcher: unrecognized response shape starting with %q", rune(trimmed[0]))
	}
}
