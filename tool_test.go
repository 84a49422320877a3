package cplxalg_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/njchilds90/cplxalg"
)

// ============================================================
// Tool interface
// ============================================================

func call(tool string, params map[string]interface{}) cplxalg.ToolResponse {
	return cplxalg.HandleToolCall(cplxalg.ToolRequest{Tool: tool, Params: params})
}

func TestTool_Expand(t *testing.T) {
	resp := call("expand", map[string]interface{}{"expr": "(a+b)(a-b)", "atoms": "plain"})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "a^2 - b^2" {
		t.Errorf("want a^2 - b^2, got %s", resp.String)
	}
	if resp.LaTeX != "a^{2} - b^{2}" {
		t.Errorf("want a^{2} - b^{2}, got %s", resp.LaTeX)
	}
}

func TestTool_ConjDefaultsToUnit(t *testing.T) {
	resp := call("conj", map[string]interface{}{"expr": "a"})
	if resp.String != "1 / a" {
		t.Errorf("want 1 / a, got %s (%s)", resp.String, resp.Error)
	}
}

func TestTool_JSONParam(t *testing.T) {
	s, err := cplxalg.ToJSON(a.Add(b))
	if err != nil {
		t.Fatal(err)
	}
	resp := call("to_latex", map[string]interface{}{"expr": decode(t, s)})
	if resp.LaTeX != "a + b" {
		t.Errorf("want a + b, got %s (%s)", resp.LaTeX, resp.Error)
	}
}

func TestTool_Predicates(t *testing.T) {
	resp := call("is_zero", map[string]interface{}{"expr": "a/b - a/b"})
	if resp.Result != true {
		t.Errorf("is_zero: want true, got %v (%s)", resp.Result, resp.Error)
	}
	resp = call("equal", map[string]interface{}{"a": "a/b", "b": "ac/(bc)", "atoms": "plain"})
	if resp.Result != true {
		t.Errorf("equal: want true, got %v (%s)", resp.Result, resp.Error)
	}
	resp = call("equal", map[string]interface{}{"a": "a", "b": "b"})
	if resp.Result != false || resp.String != "false" {
		t.Errorf("equal: want false, got %v", resp.Result)
	}
}

func TestTool_Substitute(t *testing.T) {
	resp := call("substitute", map[string]interface{}{"expr": "a*a + b", "var": "a", "value": "2", "atoms": "plain"})
	if resp.String != "4 + b" {
		t.Errorf("want 4 + b, got %s (%s)", resp.String, resp.Error)
	}
	resp = call("substitute", map[string]interface{}{"expr": "a/(b-c)", "var": "b", "value": "c"})
	if !strings.Contains(resp.Error, "division by zero") {
		t.Errorf("want division by zero, got %q", resp.Error)
	}
	resp = call("free_symbols", map[string]interface{}{"expr": "(a+c)/b"})
	if resp.String != "a, b, c" {
		t.Errorf("want a, b, c, got %s", resp.String)
	}
}

func TestTool_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		params map[string]interface{}
		want   string
	}{
		{"unknown tool", "integrate", map[string]interface{}{}, "unknown tool"},
		{"missing param", "expand", map[string]interface{}{}, "missing param"},
		{"bad param type", "expand", map[string]interface{}{"expr": 3.0}, "invalid type"},
		{"parse error", "parse", map[string]interface{}{"expr": "(a"}, "parse error"},
		{"division by zero", "expand", map[string]interface{}{"expr": "a/(b-b)"}, "division by zero"},
		{"bad atoms", "parse", map[string]interface{}{"expr": "a", "atoms": "quasi"}, "quasi"},
		{"missing var", "substitute", map[string]interface{}{"expr": "a", "value": "b"}, "missing param: var"},
		{"unknown atoms", "parse", map[string]interface{}{"expr": "a", "atoms": "odd"}, "unknown term kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(tt.tool, tt.params)
			if !strings.Contains(resp.Error, tt.want) {
				t.Errorf("want error containing %q, got %q", tt.want, resp.Error)
			}
		})
	}
}

func TestKindErrors_CarryStack(t *testing.T) {
	_, err := cplxalg.ParseTermKind("odd")
	if err == nil || !strings.Contains(fmt.Sprintf("%+v", err), "cplxalg.ParseTermKind") {
		t.Errorf("ParseTermKind error should carry a stack trace, got %+v", err)
	}
	_, err = cplxalg.ParseOpKind("pow")
	if err == nil || !strings.Contains(fmt.Sprintf("%+v", err), "cplxalg.ParseOpKind") {
		t.Errorf("ParseOpKind error should carry a stack trace, got %+v", err)
	}
}

func TestMCPToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(cplxalg.MCPToolSpec()), &spec); err != nil {
		t.Fatalf("spec is not valid JSON: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range spec.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"parse", "expand", "conj", "is_zero", "equal", "substitute", "free_symbols", "to_latex", "mcp_spec"} {
		if !names[want] {
			t.Errorf("tool %s missing from spec", want)
		}
	}
}
