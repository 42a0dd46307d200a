package engine

import "math"

// Add returns a new value v + other, wiring both operands as parents.
func (v *Value) Add(other *Value) *Value {
	data := v.read() + other.read()
	out := newNode(data, OpAdd, dedup(v, other))
	out.rule = &rule{kind: ruleAdd, x: v, y: other}
	return out
}

// Mul returns a new value v * other. The rule captures both forward operand
// values, since d(xy)/dx = y and d(xy)/dy = x.
func (v *Value) Mul(other *Value) *Value {
	xd, yd := v.read(), other.read()
	out := newNode(xd*yd, OpMul, dedup(v, other))
	out.rule = &rule{kind: ruleMul, x: v, y: other, xData: xd, yData: yd}
	return out
}

// Pow returns v raised to a plain scalar exponent. The exponent is not
// differentiable. Degenerate bases (0 to a negative power) produce Inf/NaN
// per ordinary floating-point semantics.
func (v *Value) Pow(exp float64) *Value {
	xd := v.read()
	out := newNode(math.Pow(xd, exp), OpPow, dedup(v))
	out.rule = &rule{kind: rulePow, x: v, xData: xd, exp: exp}
	return out
}

// ReLU returns max(0, v). The backward rule gates on the output's sign,
// which for this function matches gating on the input's sign and makes the
// gradient at exactly zero come out as zero.
func (v *Value) ReLU() *Value {
	xd := v.read()
	data := xd
	if data < 0 {
		data = 0
	}
	out := newNode(data, OpReLU, dedup(v))
	out.rule = &rule{kind: ruleReLU, x: v}
	return out
}

// Neg returns -v, composed as multiplication by a -1 leaf. The extra leaf
// and product node are part of the graph and visible in traversal order.
func (v *Value) Neg() *Value {
	out := v.Mul(New(-1.0))
	out.op = OpNeg
	return out
}

// Sub returns v - other, composed as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	out := v.Add(other.Neg())
	out.op = OpSub
	return out
}

// Div returns v / other, composed as v * other^-1.
func (v *Value) Div(other *Value) *Value {
	out := v.Mul(other.Pow(-1.0))
	out.op = OpDiv
	return out
}
