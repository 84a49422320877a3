package cplxalg_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/cplxalg"
)

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal %s: %v", s, err)
	}
	return m
}

// ============================================================
// JSON serialization
// ============================================================

func TestJSON_RoundTrip(t *testing.T) {
	exprs := append(corpus(), cplxalg.QuasiTerm("q", a.Add(u)).Mul(b))
	for i, x := range exprs {
		s, err := cplxalg.ToJSON(x)
		if err != nil {
			t.Fatalf("corpus[%d]: ToJSON: %v", i, err)
		}
		y, err := cplxalg.FromJSON(decode(t, s))
		if err != nil {
			t.Fatalf("corpus[%d]: FromJSON: %v", i, err)
		}
		mustEqual(t, y, x, s)
	}
}

func TestJSON_PolyShape(t *testing.T) {
	s, err := cplxalg.ToJSON(cplxalg.Scalar(cplxalg.G(2, -1)).Mul(a).Mul(a))
	if err != nil {
		t.Fatal(err)
	}
	m := decode(t, s)
	if m["type"] != "poly" {
		t.Errorf("want type poly, got %v", m["type"])
	}
	monos := m["monomials"].([]interface{})
	if len(monos) != 1 {
		t.Fatalf("want 1 monomial, got %d", len(monos))
	}
	mono := monos[0].(map[string]interface{})
	if mono["re"] != 2.0 || mono["im"] != -1.0 {
		t.Errorf("want coefficient 2-i, got %v %v", mono["re"], mono["im"])
	}
	f := mono["factors"].([]interface{})[0].(map[string]interface{})
	if f["name"] != "a" || f["exp"] != 2.0 || f["kind"] != "plain" || f["marked"] != false {
		t.Errorf("unexpected factor %v", f)
	}
}

func TestJSON_OpShape(t *testing.T) {
	s, err := cplxalg.ToJSON(a.Div(b.Add(c)))
	if err != nil {
		t.Fatal(err)
	}
	m := decode(t, s)
	if m["type"] != "op" || m["op"] != "div" {
		t.Errorf("want div op, got %v", m)
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no type", `{}`, "type"},
		{"unknown type", `{"type":"matrix"}`, "unknown expression type"},
		{"bad op", `{"type":"op","op":"pow","left":{"type":"poly","monomials":[]},"right":{"type":"poly","monomials":[]}}`, "op"},
		{"missing left", `{"type":"op","op":"add","right":{"type":"poly","monomials":[]}}`, "left"},
		{"bad monomials", `{"type":"poly","monomials":3}`, "monomials"},
		{"fractional coefficient", `{"type":"poly","monomials":[{"re":1.5,"im":0}]}`, "integer"},
		{"bad exponent", `{"type":"poly","monomials":[{"re":1,"im":0,"factors":[{"name":"a","kind":"plain","exp":0}]}]}`, "exp"},
		{"bad kind", `{"type":"poly","monomials":[{"re":1,"im":0,"factors":[{"name":"a","kind":"odd","exp":1}]}]}`, "kind"},
		{"quasi without hidden", `{"type":"poly","monomials":[{"re":1,"im":0,"factors":[{"name":"q","kind":"quasi","exp":1}]}]}`, "hidden"},
		{"division by zero", `{"type":"op","op":"div","left":{"type":"poly","monomials":[{"re":1,"im":0}]},"right":{"type":"poly","monomials":[]}}`, "division by zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cplxalg.FromJSON(decode(t, tt.in))
			if err == nil {
				t.Fatalf("want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
	if _, err := cplxalg.FromJSON(nil); err == nil {
		t.Error("nil map should be rejected")
	}
}
