// Package domain holds the corpus document model, the benchmark query
// model and the shared error taxonomy.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OptionalAttributeBuckets is the modulus for the sparse optional
// attribute key: document i may carry att_opt_<i mod 5>.
const OptionalAttributeBuckets = 5

// Nested is the att2 sub-object.
type Nested struct {
	NestedKey  string `json:"nested_key"`
	NestedBool bool   `json:"nested_bool"`
}

// Attributes is the heterogeneous attribute bag. att0..att3 are always
// present; at most one att_opt_* key may be present, and when it is not,
// the key is missing from the serialized form entirely (never null).
type Attributes struct {
	Att0 int      `json:"att0"`
	Att1 string   `json:"att1"`
	Att2 Nested   `json:"att2"`
	Att3 []string `json:"att3"`

	// OptionalKey/OptionalValue model the sparse att_opt_<i> field.
	// An empty OptionalKey means the field is absent.
	OptionalKey   string `json:"-"`
	OptionalValue string `json:"-"`
}

// MarshalJSON serializes the bag as a flat object, omitting the optional
// key when it is absent.
func (a Attributes) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"att0": a.Att0,
		"att1": a.Att1,
		"att2": a.Att2,
		"att3": a.Att3,
	}
	if a.OptionalKey != "" {
		m[a.OptionalKey] = a.OptionalValue
	}
	return json.Marshal(m)
}

// UnmarshalJSON restores the bag, recovering whichever att_opt_* key is
// present.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	fixed := map[string]any{
		"att0": &a.Att0,
		"att1": &a.Att1,
		"att2": &a.Att2,
		"att3": &a.Att3,
	}
	for key, dst := range fixed {
		raw, ok := m[key]
		if !ok {
			return fmt.Errorf("attributes: missing mandatory key %q", key)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("attributes: decode %q: %w", key, err)
		}
	}

	a.OptionalKey = ""
	a.OptionalValue = ""
	for key, raw := range m {
		if !strings.HasPrefix(key, "att_opt_") {
			continue
		}
		a.OptionalKey = key
		if err := json.Unmarshal(raw, &a.OptionalValue); err != nil {
			return fmt.Errorf("attributes: decode %q: %w", key, err)
		}
		break
	}
	return nil
}

// Document is the unit of data interchange. The corpus is generated once,
// handed unchanged to both loaders and discarded at process exit.
type Document struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	Tags       []string   `json:"tags"`
	Attributes Attributes `json:"attributes"`
}

// Encode returns the canonical JSON form written to both engines.
func (d Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
