package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePasswordStrength(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantScore float64
		wantLabel string
	}{
		{name: "empty", password: "", wantScore: 0, wantLabel: StrengthNone},
		{name: "short lowercase", password: "abc", wantScore: 0, wantLabel: StrengthNone},
		{name: "uppercase only short", password: "A", wantScore: 0.2, wantLabel: StrengthWeak},
		{name: "length eight", password: "abcdefgh", wantScore: 0.25, wantLabel: StrengthWeak},
		{name: "length twelve with upper", password: "Abcdefghijkl", wantScore: 0.6, wantLabel: StrengthFair},
		{name: "good boundary", password: "Abcdefgh1", wantScore: 0.65, wantLabel: StrengthGood},
		{name: "fair below boundary", password: "abcdefgh1", wantScore: 0.45, wantLabel: StrengthFair},
		{name: "all criteria", password: "Abcdefghijkl1!", wantScore: 1.0, wantLabel: StrengthStrong},
		{name: "good not strong", password: "Abcdefgh1!", wantScore: 0.85, wantLabel: StrengthGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePasswordStrength(tt.password)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestPasswordStrengthMonotonic(t *testing.T) {
	steps := []string{"abc", "abcdefgh", "abcdefghijkl", "Abcdefghijkl", "Abcdefghijk1", "Abcdefghij1!"}

	prev := -1.0
	for _, pw := range steps {
		score := EvaluatePasswordStrength(pw).Score
		assert.GreaterOrEqual(t, score, prev, pw)
		prev = score
	}
}
