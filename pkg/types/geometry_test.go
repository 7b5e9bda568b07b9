package types

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, -4)
	b := V(2, 0.5)

	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"Add", a.Add(b), V(5, -3.5)},
		{"Sub", a.Sub(b), V(1, -4.5)},
		{"Mul", a.Mul(b), V(6, -2)},
		{"Div", a.Div(b), V(1.5, -8)},
		{"Scale", a.Scale(2), V(6, -8)},
		{"Abs", a.Abs(), V(3, 4)},
		{"Clamp", V(0, 2000).Clamp(0.01, 1024), V(0.01, 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVec2ZeroChecks(t *testing.T) {
	if !V(0, 0).IsZero() {
		t.Error("(0,0) should be zero")
	}
	if V(0, 1).IsZero() {
		t.Error("(0,1) should not be zero")
	}
	if !V(0, 1).HasZeroAxis() || !V(1, 0).HasZeroAxis() {
		t.Error("vectors with one zero component should report HasZeroAxis")
	}
	if One().HasZeroAxis() {
		t.Error("One() should not have a zero axis")
	}
}

func TestRect2HasPoint(t *testing.T) {
	r := Rect2{Pos: V(10, 10), Size: V(20, 10)}

	tests := []struct {
		p    Vec2
		want bool
	}{
		{V(10, 10), true},
		{V(29.9, 19.9), true},
		{V(30, 15), false},
		{V(15, 20), false},
		{V(9.9, 15), false},
	}

	for _, tt := range tests {
		if got := r.HasPoint(tt.p); got != tt.want {
			t.Errorf("HasPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if r.End() != V(30, 20) {
		t.Errorf("End() = %v, want (30,20)", r.End())
	}
}
