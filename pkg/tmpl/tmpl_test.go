package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "plain text",
			tmpl: "hello",
			data: nil,
			want: "hello",
		},
		{
			name: "field access",
			tmpl: "{{.Name}}",
			data: struct{ Name string }{Name: "report"},
			want: "report",
		},
		{
			name: "code span",
			tmpl: "{{code .Line}}",
			data: struct{ Line string }{Line: "color: red;"},
			want: "`color: red;`",
		},
		{
			name: "code span escapes backticks",
			tmpl: "{{code .Line}}",
			data: struct{ Line string }{Line: "a `b` c"},
			want: "`a 'b' c`",
		},
		{
			name: "code span keeps empty lines visible",
			tmpl: "{{code .Line}}",
			data: struct{ Line string }{Line: ""},
			want: "` `",
		},
		{
			name: "pct formats ratios",
			tmpl: "{{pct .Ratio}}",
			data: struct{ Ratio float64 }{Ratio: 0.857},
			want: "86%",
		},
		{
			name: "join",
			tmpl: `{{join .Args " "}}`,
			data: struct{ Args []string }{Args: []string{"a", "b"}},
			want: "a b",
		},
		{
			name:    "invalid template",
			tmpl:    "{{.Name",
			data:    nil,
			wantErr: true,
		},
		{
			name:    "missing key",
			tmpl:    "{{.Missing}}",
			data:    map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
