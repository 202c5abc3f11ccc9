package inline

import (
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yogaland/yogaland/catalog"
)

// Output is the document written in JSON mode.
type Output struct {
	Query    string                   `json:"query,omitempty" jsonschema:"description=Search query the result was filtered by"`
	Category string                   `json:"category,omitempty" jsonschema:"description=Category the result was filtered by"`
	Result   []*catalog.Video         `json:"result" jsonschema:"description=Matching videos"`
	Ads      []*catalog.Advertisement `json:"ads,omitempty" jsonschema:"description=Ad inventory of the catalog"`
}

// Schema describes Output.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}
	return reflector.Reflect(&Output{})
}

func writeJson(out io.Writer, output *Output) error {
	if output.Result == nil {
		output.Result = []*catalog.Video{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
