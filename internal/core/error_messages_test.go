package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "wrapped not found maps to PER001",
			err:         fmt.Errorf("update person 123: %w", ErrNotFound),
			wantCode:    "PER001",
			wantMessage: "The requested record no longer exists",
		},
		{
			name:        "wrapped duplicate maps to PER002",
			err:         fmt.Errorf("add country %q: %w", "Norway", ErrDuplicate),
			wantCode:    "PER002",
			wantMessage: "A record with this name already exists",
		},
		{
			name:        "validation error keeps its message",
			err:         &ValidationError{Field: "Email", Message: "Invalid Email"},
			wantCode:    "VAL001",
			wantMessage: "Invalid Email",
		},
		{
			name:        "unsupported upload maps to FILE002",
			err:         fmt.Errorf("persons.csv: %w", ErrUnsupportedFile),
			wantCode:    "FILE002",
			wantMessage: "Unsupported file, it must be an xlsx file",
		},
		{
			name:        "postgres unique violation maps to DB001",
			err:         errors.New("ERROR: duplicate key value violates unique constraint"),
			wantCode:    "DB001",
			wantMessage: "This value must be unique but already exists",
		},
		{
			name:        "sqlite foreign key maps to DB002",
			err:         errors.New("FOREIGN KEY constraint failed"),
			wantCode:    "DB002",
			wantMessage: "Referenced country does not exist",
		},
		{
			name:        "sqlite busy maps to DB004",
			err:         errors.New("database is locked (5) (SQLITE_BUSY)"),
			wantCode:    "DB004",
			wantMessage: "Database was busy with conflicting operations",
		},
		{
			name:        "deadline maps to REQ002",
			err:         errors.New("list persons: context deadline exceeded"),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrDuplicate)

	expected := "A record with this name already exists (Code: PER002). Choose a different name"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}
