package cplxalg

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool request. Expression parameters may be either
// a JSON expression object or infix text.
func HandleToolCall(req ToolRequest) ToolResponse {
	atoms := UnitKind
	if v, ok := req.Params["atoms"].(string); ok {
		k, err := ParseTermKind(v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		atoms = k
	}
	parser, err := NewParser(atoms)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}

	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, errors.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return parser.Parse(val)
		case map[string]interface{}:
			return FromJSON(val)
		}
		return nil, errors.Errorf("invalid type for param %s", key)
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: toJSON(e), String: e.String(), LaTeX: e.LaTeX()}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "parse":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "expand":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		ex, err := TryExpand(e)
		if err != nil {
			return fail(err)
		}
		return respond(ex)

	case "conj":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		c, err := Safely(e.Conj)
		if err != nil {
			return fail(err)
		}
		return respond(c)

	case "is_zero":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		z, err := TryIsZero(e)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: z, String: fmt.Sprintf("%t", z)}

	case "equal":
		a, err := getExpr("a")
		if err != nil {
			return fail(err)
		}
		b, err := getExpr("b")
		if err != nil {
			return fail(err)
		}
		eq, err := TryEqual(a, b)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: eq, String: fmt.Sprintf("%t", eq)}

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		name, ok := req.Params["var"].(string)
		if !ok || name == "" {
			return fail(errors.New("missing param: var"))
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		res, err := Safely(func() Expr { return Subs(e, name, val) })
		if err != nil {
			return fail(err)
		}
		return respond(res)

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		syms := SortedSymbols(e)
		return ToolResponse{Result: syms, String: strings.Join(syms, ", ")}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: e.LaTeX(), LaTeX: e.LaTeX()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// MCPToolSpec returns the JSON schema of the tools served by HandleToolCall.
func MCPToolSpec() string {
	expr := map[string]string{"expr": "object|string", "atoms": "string"}
	tools := []map[string]interface{}{
		ts("parse", "Parse infix text into an expression (atoms: plain|real|unit, default unit)", []string{"expr"}, expr),
		ts("expand", "Expand to a polynomial or a single top-level quotient", []string{"expr"}, expr),
		ts("conj", "Complex conjugate", []string{"expr"}, expr),
		ts("is_zero", "Test whether the expression is identically zero", []string{"expr"}, expr),
		ts("equal", "Test canonical equality of a and b", []string{"a", "b"}, map[string]string{"a": "object|string", "b": "object|string", "atoms": "string"}),
		ts("substitute", "Replace a variable by an expression (its conjugate by the conjugate)", []string{"expr", "var", "value"}, map[string]string{"expr": "object|string", "var": "string", "value": "object|string", "atoms": "string"}),
		ts("free_symbols", "List the variable names in an expression", []string{"expr"}, expr),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, expr),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
