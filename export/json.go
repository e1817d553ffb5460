package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Ebzefr/WebSecura/models"
)

// JSONEncoder writes the report verbatim, indented by two spaces.
type JSONEncoder struct{}

func (JSONEncoder) Format() Format { return FormatJSON }

func (JSONEncoder) Encode(r *models.ScanReport) (Output, error) {
	if r == nil {
		return Output{}, ErrNoData
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return Output{}, fmt.Errorf("encoding report as JSON: %w", err)
	}
	return Output{Format: FormatJSON, Ext: "json", ContentType: "application/json", Data: buf.Bytes()}, nil
}
