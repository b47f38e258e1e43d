package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMaxHistory(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr error
	}{
		{name: "int", input: 50, want: 50},
		{name: "int64", input: int64(10), want: 10},
		{name: "whole float", input: float64(500), want: 500},
		{name: "json number", input: json.Number("42"), want: 42},
		{name: "json whole decimal", input: json.Number("30.0"), want: 30},
		{name: "json fraction", input: json.Number("12.5"), wantErr: ErrNotInteger},
		{name: "numeric string", input: " 120 ", want: 120},
		{name: "fractional float", input: 12.5, wantErr: ErrNotInteger},
		{name: "word", input: "abc", wantErr: ErrNotInteger},
		{name: "decimal string", input: "12.0", wantErr: ErrNotInteger},
		{name: "bool", input: true, wantErr: ErrNotInteger},
		{name: "nil", input: nil, wantErr: ErrNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMaxHistory(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMaxHistory(%v) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error %v should wrap ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMaxHistory(%v) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxHistory(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSettingsValidateAndClamp(t *testing.T) {
	for _, v := range []int{10, 50, 500} {
		if err := (Settings{MaxHistory: v}).Validate(); err != nil {
			t.Errorf("Validate(%d) error = %v", v, err)
		}
	}
	for _, v := range []int{9, 501, 0, -1} {
		if err := (Settings{MaxHistory: v}).Validate(); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Validate(%d) error = %v, want ErrOutOfRange", v, err)
		}
	}

	if got := (Settings{MaxHistory: 3}).Clamp().MaxHistory; got != MinHistory {
		t.Errorf("Clamp(3) = %d, want %d", got, MinHistory)
	}
	if got := (Settings{MaxHistory: 9000}).Clamp().MaxHistory; got != MaxHistory {
		t.Errorf("Clamp(9000) = %d, want %d", got, MaxHistory)
	}
	if got := (Settings{MaxHistory: 77}).Clamp().MaxHistory; got != 77 {
		t.Errorf("Clamp(77) = %d, want 77", got)
	}
}
