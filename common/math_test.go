package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero", Vec2{}, Vec2{}},
		{"axis", V(3, 0), V(1, 0)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.InDelta(t, tc.want.X, got.X, Epsilon)
			assert.InDelta(t, tc.want.Y, got.Y, Epsilon)
		})
	}
}

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 5))
	assert.Equal(t, 5.0, Clamp(7, 0, 5))
	assert.Equal(t, 3, ClampInt(3, 0, 5))
	assert.Equal(t, -1.0, Sign(-0.2))
	assert.Equal(t, 0.0, Sign(0))
	assert.InDelta(t, 5.0, V(0, 0).Dist(V(3, 4)), Epsilon)
	assert.InDelta(t, 2.5, Lerp(0, 5, 0.5), Epsilon)
}
