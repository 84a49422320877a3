package cplxalg

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(toJSON(e))
	return string(b), err
}

func toJSON(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case *Poly:
		monos := make([]map[string]interface{}, len(v.monos))
		for i, m := range v.monos {
			factors := make([]map[string]interface{}, len(m.factors))
			for j, f := range m.factors {
				fm := map[string]interface{}{
					"name":   f.Atom.name,
					"kind":   f.Atom.kind.String(),
					"marked": f.Atom.marked,
					"exp":    f.Exp,
				}
				if f.Atom.kind == QuasiKind {
					fm["hidden"] = toJSON(f.Atom.hidden)
				}
				factors[j] = fm
			}
			monos[i] = map[string]interface{}{
				"re":      m.coef.Re,
				"im":      m.coef.Im,
				"factors": factors,
			}
		}
		return map[string]interface{}{"type": "poly", "monomials": monos}
	case *Op:
		return map[string]interface{}{
			"type":  "op",
			"op":    v.kind.String(),
			"left":  toJSON(v.left),
			"right": toJSON(v.right),
		}
	}
	panic(fmt.Sprintf("cplxalg: cannot serialize %T", e))
}

// FromJSON decodes the object produced by ToJSON (after json.Unmarshal into a
// map). Operation nodes are rebuilt through the algebra, so the result is
// folded the same way as freshly computed expressions.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}
	switch typ {
	case "poly":
		raw, ok := data["monomials"].([]interface{})
		if !ok {
			return nil, errors.New("poly: 'monomials' must be an array")
		}
		monos := make([]Monomial, 0, len(raw))
		for i, r := range raw {
			mm, ok := r.(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("poly: monomials[%d] must be an object", i)
			}
			m, err := monomialFromJSON(mm)
			if err != nil {
				return nil, errors.Wrapf(err, "poly: monomials[%d]", i)
			}
			monos = append(monos, m)
		}
		return Safely(func() Expr {
			p := &Poly{}
			for _, m := range monos {
				p.accumulate(m)
			}
			return p
		})

	case "op":
		name, _ := data["op"].(string)
		kind, err := ParseOpKind(name)
		if err != nil {
			return nil, errors.Wrap(err, "op")
		}
		lm, ok := data["left"].(map[string]interface{})
		if !ok {
			return nil, errors.New("op: 'left' must be an object")
		}
		rm, ok := data["right"].(map[string]interface{})
		if !ok {
			return nil, errors.New("op: 'right' must be an object")
		}
		left, err := FromJSON(lm)
		if err != nil {
			return nil, errors.Wrap(err, "op: left")
		}
		right, err := FromJSON(rm)
		if err != nil {
			return nil, errors.Wrap(err, "op: right")
		}
		return Safely(func() Expr {
			switch kind {
			case Addition:
				return add(left, right)
			case Multiplication:
				return mul(left, right)
			case Division:
				return div(left, right)
			}
			panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(kind)))
		})
	}
	return nil, errors.Errorf("unknown expression type: %s", typ)
}

func monomialFromJSON(data map[string]interface{}) (Monomial, error) {
	re, err := intField(data, "re")
	if err != nil {
		return Monomial{}, err
	}
	im, err := intField(data, "im")
	if err != nil {
		return Monomial{}, err
	}
	var factors []Factor
	if raw, ok := data["factors"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return Monomial{}, errors.New("'factors' must be an array")
		}
		for i, r := range list {
			fm, ok := r.(map[string]interface{})
			if !ok {
				return Monomial{}, errors.Errorf("factors[%d] must be an object", i)
			}
			f, err := factorFromJSON(fm)
			if err != nil {
				return Monomial{}, errors.Wrapf(err, "factors[%d]", i)
			}
			factors = append(factors, f)
		}
	}
	return NewMonomial(G(re, im), factors...), nil
}

func factorFromJSON(data map[string]interface{}) (Factor, error) {
	name, ok := data["name"].(string)
	if !ok || name == "" {
		return Factor{}, errors.New("'name' must be a non-empty string")
	}
	kindName, _ := data["kind"].(string)
	kind, err := ParseTermKind(kindName)
	if err != nil {
		return Factor{}, err
	}
	exp, err := intField(data, "exp")
	if err != nil {
		return Factor{}, err
	}
	if exp < 1 {
		return Factor{}, errors.Errorf("'exp' must be positive, got %d", exp)
	}
	marked, _ := data["marked"].(bool)
	atom := Atom{name: name, marked: marked, kind: kind}
	if kind == QuasiKind {
		hm, ok := data["hidden"].(map[string]interface{})
		if !ok {
			return Factor{}, errors.New("quasi-term: 'hidden' must be an object")
		}
		if atom.hidden, err = FromJSON(hm); err != nil {
			return Factor{}, errors.Wrap(err, "quasi-term: hidden")
		}
	}
	return Factor{Atom: atom, Exp: int(exp)}, nil
}

func intField(data map[string]interface{}, field string) (int64, error) {
	v, ok := data[field]
	if !ok {
		return 0, errors.Errorf("missing %q", field)
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "%q", field)
		}
		return i, nil
	default:
		return 0, errors.Errorf("%q must be a number", field)
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, errors.Errorf("%q must be an integer", field)
	}
	return int64(f), nil
}
