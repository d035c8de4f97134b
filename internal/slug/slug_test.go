package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThread(t *testing.T) {
	tests := []struct {
		name  string
		id    int64
		title string
		safe  bool
		want  string
	}{
		{
			name:  "brackets become parens, trailing punctuation collapses",
			id:    42,
			title: "Hello [World]!!",
			want:  "42-hello-(world)!",
		},
		{
			name:  "safe mode emits bare id",
			id:    42,
			title: "Hello [World]!!",
			safe:  true,
			want:  "42",
		},
		{
			name:  "spaces collapse into single hyphens",
			id:    7,
			title: "several   words    here",
			want:  "7-several-words-here",
		},
		{
			name:  "curly braces treated like brackets",
			id:    9,
			title: "{braces}",
			want:  "9-(braces)",
		},
		{
			name:  "leading and trailing separators trimmed",
			id:    3,
			title: "  ...padded...  ",
			want:  "3-padded",
		},
		{
			name:  "kept punctuation survives",
			id:    5,
			title: "rock&roll, it's fine;really=yes",
			want:  "5-rock&roll,-it's-fine;really=yes",
		},
		{
			name:  "title with no usable characters falls back to id",
			id:    11,
			title: "@@@",
			want:  "11",
		},
		{
			name:  "unicode letters kept",
			id:    8,
			title: "тред о Go",
			want:  "8-тред-о-go",
		},
		{
			name:  "long trailing run keeps one character",
			id:    12,
			title: "wow!!!!",
			want:  "12-wow!",
		},
		{
			name:  "single trailing punctuation untouched",
			id:    13,
			title: "done;",
			want:  "13-done;",
		},
		{
			name:  "mixed trailing punctuation only collapses the final run",
			id:    14,
			title: "what?!)))",
			want:  "14-what-!)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Thread(tt.id, tt.title, tt.safe))
		})
	}
}
