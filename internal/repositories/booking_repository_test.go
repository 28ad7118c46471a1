package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}), true},
		{"other pq error", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSerializationFailure(tt.err); got != tt.want {
				t.Errorf("isSerializationFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
