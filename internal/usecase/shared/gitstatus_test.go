package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangedPaths(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   []string
	}{
		{name: "empty", status: "", want: []string{}},
		{name: "whitespace only", status: "   \n\n", want: []string{}},
		{
			name:   "porcelain lines",
			status: " M internal/foo.go\n?? newfile.txt\nA  added.go\n",
			want:   []string{"internal/foo.go", "newfile.txt", "added.go"},
		},
		{
			name:   "short line kept verbatim",
			status: "x y\n",
			want:   []string{"x y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangedPaths(tt.status))
		})
	}
}
