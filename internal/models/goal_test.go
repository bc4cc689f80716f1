// ABOUTME: Tests for goal types and savings parsing.
// ABOUTME: Savings text comes from the assistant and is loosely formatted.
package models

import "testing"

func TestParseSavings(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"$25", 25},
		{" $ 12.50 ", 12.5},
		{"You could save around $1,250.75 per year.", 1250.75},
		{"about 40 dollars a month", 40},
		{"no idea", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseSavings(tt.input); got != tt.want {
			t.Errorf("ParseSavings(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseGoalType(t *testing.T) {
	tests := []struct {
		input  string
		want   GoalType
		wantOK bool
	}{
		{"Food Waste Reduction", GoalWasteReduction, true},
		{"waste", GoalWasteReduction, true},
		{"Healthy Eating", GoalHealthyEating, true},
		{"eating", GoalHealthyEating, true},
		{"fitness", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseGoalType(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseGoalType(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewGoal(t *testing.T) {
	g := NewGoal(3, GoalHealthyEating, "Eat two servings of vegetables daily")
	g.PotentialSavings = "$15.00"

	if g.Completed {
		t.Error("new goal should not be completed")
	}
	if g.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if g.Savings() != 15 {
		t.Errorf("Savings() = %v, want 15", g.Savings())
	}
}
