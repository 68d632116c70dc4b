package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit
// null, which a plain *string cannot. Merge-patch style requests need
// all three states:
//   - Present=false: field omitted, leave the stored value alone
//   - Present=true, Value=nil: explicit null, clear the stored value
//   - Present=true, Value=&s: set the stored value to s
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON runs only when the field appears in the payload, which
// is what makes Present trustworthy.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
