package step

import (
	"errors"
	"testing"
)

func TestNewStepID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid simple ID",
			input:   "homebrew",
			wantErr: nil,
		},
		{
			name:    "valid with hyphens",
			input:   "docker-engine",
			wantErr: nil,
		},
		{
			name:    "valid with digits",
			input:   "open-webui",
			wantErr: nil,
		},
		{
			name:    "leading digit",
			input:   "0th-step",
			wantErr: nil,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: ErrEmptyStepID,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: ErrEmptyStepID,
		},
		{
			name:    "contains spaces",
			input:   "docker engine",
			wantErr: ErrInvalidStepID,
		},
		{
			name:    "uppercase",
			input:   "Docker",
			wantErr: ErrInvalidStepID,
		},
		{
			name:    "starts with hyphen",
			input:   "-docker",
			wantErr: ErrInvalidStepID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewStepID(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewStepID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("NewStepID(%q) unexpected error: %v", tt.input, err)
				return
			}
			if id.String() != tt.input {
				t.Errorf("StepID.String() = %q, want %q", id.String(), tt.input)
			}
		})
	}
}

func TestStepID_Equality(t *testing.T) {
	id1, _ := NewStepID("colima-vm")
	id2, _ := NewStepID("colima-vm")
	id3, _ := NewStepID("ollama")

	if !id1.Equals(id2) {
		t.Error("expected id1 to equal id2")
	}
	if id1.Equals(id3) {
		t.Error("expected id1 to not equal id3")
	}
}

func TestMustNewStepID(t *testing.T) {
	t.Run("valid ID does not panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MustNewStepID panicked unexpectedly: %v", r)
			}
		}()

		id := MustNewStepID("model")
		if id.String() != "model" {
			t.Errorf("MustNewStepID returned wrong value: %q", id.String())
		}
	})

	t.Run("invalid ID panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("MustNewStepID should have panicked for invalid ID")
			}
		}()

		MustNewStepID("")
	})
}

func TestStepID_IsZero(t *testing.T) {
	var zero StepID
	if !zero.IsZero() {
		t.Error("zero value StepID should return true for IsZero()")
	}

	id, _ := NewStepID("homebrew")
	if id.IsZero() {
		t.Error("valid StepID should return false for IsZero()")
	}
}
