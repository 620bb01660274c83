package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		input string
		want  *time.Time
	}{
		{"", nil},
		{"   ", nil},
		{"2024-02-15", ptr(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))},
		{"2024-02-15T10:30:00+02:00", ptr(time.Date(2024, 2, 15, 8, 30, 0, 0, time.UTC))},
	}

	for _, tt := range tests {
		got, err := ParseDueDate(tt.input)
		if err != nil {
			t.Errorf("ParseDueDate(%q) error: %v", tt.input, err)
			continue
		}
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseDueDate(%q) = %v, want nil", tt.input, got)
		case tt.want != nil && (got == nil || !got.Equal(*tt.want)):
			t.Errorf("ParseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, input := range []string{"tomorrow", "15/02/2024", "2024-13-01"} {
		if _, err := ParseDueDate(input); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDueDate(%q) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if FormatDate(nil) != "-" {
		t.Error("nil date should render as -")
	}
	if got := FormatDate(ptr(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))); got != "2024-02-15" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out strings.Builder
		if got := Confirm(strings.NewReader(tt.input), &out, "Delete?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete? (y/N): " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestStringFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("other", "", "")
	cmd.SetArgs([]string{"--name", ""})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if v, ok := StringFlag(cmd, "name"); !ok || v != "" {
		t.Errorf("explicit empty flag = %q, %v", v, ok)
	}
	if _, ok := StringFlag(cmd, "other"); ok {
		t.Error("unset flag reported as set")
	}
	if _, ok := StringFlag(cmd, "missing"); ok {
		t.Error("unknown flag reported as set")
	}
}

func TestSessionFromContext(t *testing.T) {
	ctx := context.Background()
	if SessionFromContext(ctx) != "" {
		t.Error("empty context should have no session")
	}
	if got := SessionFromContext(WithSession(ctx, "work")); got != "work" {
		t.Errorf("SessionFromContext = %q", got)
	}
}

func ptr(t time.Time) *time.Time { return &t }
