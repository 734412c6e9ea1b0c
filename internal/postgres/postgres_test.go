package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"laskar", "laskar"},
		{"100%", `100\%`},
		{"student_id", `student\_id`},
		{`back\slash`, `back\\slash`},
		{"%_", `\%\_`},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EscapeLike(tc.in), tc.in)
	}
}
