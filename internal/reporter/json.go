package reporter

import (
	"encoding/json"
	"io"

	"runpad/internal/domain/execution"
)

// JSON writes res as an indented JSON document followed by a newline.
func JSON(w io.Writer, res *execution.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
