package output

import (
	"encoding/json"
	"io"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// JSONFormatter formats advisory results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

// Format generates JSON output for one result
func (jf JSONFormatter) Format(result *domain.AdvisoryResult) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// BatchEntry pairs a batch result with the input it came from
type BatchEntry struct {
	Source string                 `json:"source"`
	Result *domain.AdvisoryResult `json:"result"`
}

// WriteJSONBatch writes batch results as an indented JSON array
func WriteJSONBatch(w io.Writer, entries []BatchEntry) error {
	if entries == nil {
		entries = []BatchEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
