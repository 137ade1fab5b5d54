package model

import (
	"encoding/json"
	"testing"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Text
	}{
		{`"ANA"`, "ANA"},
		{`"ENAJENACIÓN"`, "ENAJENACIÓN"},
		{`2023`, "2023"},
		{`15.5`, "15.5"},
		{`null`, ""},
		{`true`, "true"},
		{`false`, ""},
		{`0`, ""},
		{`0.0`, ""},
		{`"0"`, "0"},
		{`["nota"]`, ""},
		{`{"clave":1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestText_InvalidJSON(t *testing.T) {
	var got Text
	if err := got.UnmarshalJSON([]byte(`tru`)); err == nil {
		t.Error("expected error for malformed boolean")
	}
}

func TestText_Or(t *testing.T) {
	if got := Text("").Or("No especificado"); got != "No especificado" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := Text("VENTA").Or("No especificado"); got != "VENTA" {
		t.Errorf("expected value, got %q", got)
	}
}
