package books

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		joinLines bool
		want      string
	}{
		{"single line", `{"items":[]}`, true, `{"items":[]}`},
		{"lf", "{\n\"items\": []\n}\n", true, `{"items": []}`},
		{"crlf", "{\r\n\"items\": []\r\n}", true, `{"items": []}`},
		{"lone cr", "a\rb", true, "ab"},
		{"raw keeps lines", "{\n\"items\": []\n}\n", false, "{\n\"items\": []\n}\n"},
		{"invalid utf8", "a\xffb", false, "a\uFFFDb"},
		{"empty", "", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readBody(strings.NewReader(tc.in), tc.joinLines)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
