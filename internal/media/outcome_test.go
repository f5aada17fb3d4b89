package media

import (
	"errors"
	"testing"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name   string
		out    Outcome
		ok     bool
		status string
	}{
		{"success", Success("/p/a.jpg"), true, "success"},
		{"failure", Failure(errors.New("x")), false, "failed"},
		{"nil error failure", Failure(nil), false, "failed"},
		{"skipped", Skipped("audio extraction failed"), false, "skipped"},
		{"empty path", Outcome{}, false, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.OK(); got != tt.ok {
				t.Errorf("OK() = %v, want %v", got, tt.ok)
			}
			if got := tt.out.status(); got != tt.status {
				t.Errorf("status() = %q, want %q", got, tt.status)
			}
		})
	}
}

func TestSkipped_WrapsErrSkipped(t *testing.T) {
	out := Skipped("reason")
	if !errors.Is(out.Err, ErrSkipped) {
		t.Errorf("Skipped error %v does not wrap ErrSkipped", out.Err)
	}
}
