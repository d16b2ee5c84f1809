package csl

import "encoding/json"

// Name is one personal or institutional name attached to a name variable.
// Personal names carry family/given parts and optional particles; an
// institutional name sets Literal and nothing else.
type Name struct {
	Family              string
	Given               string
	DroppingParticle    string
	NonDroppingParticle string
	Suffix              string
	CommaSuffix         bool
	StaticOrdering      bool
	Literal             string
}

// IsLiteral reports whether the name is an institution rendered verbatim
func (n Name) IsLiteral() bool {
	return n.Literal != ""
}

// IsEmpty reports whether the name has no renderable part at all
func (n Name) IsEmpty() bool {
	return n.Family == "" && n.Given == "" && n.Literal == ""
}

// UnmarshalJSON decodes a CSL-JSON name object
func (n *Name) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		switch key {
		case "family":
			n.Family = flexString(raw)
		case "given":
			n.Given = flexString(raw)
		case "dropping-particle":
			n.DroppingParticle = flexString(raw)
		case "non-dropping-particle":
			n.NonDroppingParticle = flexString(raw)
		case "suffix":
			n.Suffix = flexString(raw)
		case "comma-suffix":
			n.CommaSuffix = flexBool(raw)
		case "static-ordering":
			n.StaticOrdering = flexBool(raw)
		case "literal":
			n.Literal = flexString(raw)
		}
	}
	return nil
}

// MarshalJSON encodes the name as a CSL-JSON object
func (n Name) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})
	if n.Family != "" {
		out["family"] = n.Family
	}
	if n.Given != "" {
		out["given"] = n.Given
	}
	if n.DroppingParticle != "" {
		out["dropping-particle"] = n.DroppingParticle
	}
	if n.NonDroppingParticle != "" {
		out["non-dropping-particle"] = n.NonDroppingParticle
	}
	if n.Suffix != "" {
		out["suffix"] = n.Suffix
	}
	if n.CommaSuffix {
		out["comma-suffix"] = true
	}
	if n.StaticOrdering {
		out["static-ordering"] = true
	}
	if n.Literal != "" {
		out["literal"] = n.Literal
	}
	return json.Marshal(out)
}
