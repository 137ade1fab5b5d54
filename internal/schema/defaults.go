package schema

import (
	"bytes"
	"encoding/json"

	"github.com/ppiankov/reclasifica/internal/model"
)

// first returns the label of the first entry of a catalog list, or "".
// Every builder resolves optional list values through it.
func first(list []model.CodeLabel) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].Label.String()
}

// firstCode returns the code of the first entry of a catalog list, or ""
func firstCode(list []model.CodeLabel) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].Code.String()
}

func codeLabel(cl *model.CodeLabel) model.CodeLabel {
	if cl == nil {
		return model.CodeLabel{}
	}
	return *cl
}

func institution(in *model.Institution) model.Institution {
	if in == nil {
		return model.Institution{}
	}
	return *in
}

func position(p *model.Position) model.Position {
	if p == nil {
		return model.Position{}
	}
	return *p
}

// superior keeps the superior reference verbatim unless it is a falsy JSON
// scalar, which is emitted as null
func superior(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", "0", `""`:
		return nil
	}
	return trimmed
}

func ptr(s string) *string {
	return &s
}
