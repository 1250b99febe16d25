package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccept(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []string // "main/sub" in selection order
	}{
		{
			name:   "single type",
			header: "text/html",
			want:   []string{"text/html"},
		},
		{
			name:   "quality ordering",
			header: "text/html;q=0.5, application/json",
			want:   []string{"application/json", "text/html"},
		},
		{
			name:   "equal quality keeps header order",
			header: "text/html, application/xhtml+xml",
			want:   []string{"text/html", "application/xhtml+xml"},
		},
		{
			name:   "q zero is dropped",
			header: "text/html;q=0, application/json",
			want:   []string{"application/json"},
		},
		{
			name:   "malformed entries skipped",
			header: "texthtml, /json, text/, application/json",
			want:   []string{"application/json"},
		},
		{
			name:   "wildcards kept",
			header: "image/*;q=0.8, */*;q=0.1",
			want:   []string{"image/*", "*/*"},
		},
		{
			name:   "empty header",
			header: "",
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ranges := parseAccept(tc.header)
			require.Len(t, ranges, len(tc.want))
			for i, want := range tc.want {
				assert.Equal(t, want, ranges[i].mainType+"/"+ranges[i].subType)
			}
		})
	}
}

func TestMediaRangeMatches(t *testing.T) {
	tests := []struct {
		name     string
		r        mediaRange
		mimeType string
		want     bool
	}{
		{"exact", mediaRange{mainType: "text", subType: "html"}, "text/html", true},
		{"case insensitive", mediaRange{mainType: "text", subType: "html"}, "Text/HTML", true},
		{"subtype wildcard", mediaRange{mainType: "text", subType: "*"}, "text/plain", true},
		{"full wildcard", mediaRange{mainType: "*", subType: "*"}, "application/json", true},
		{"parameters ignored", mediaRange{mainType: "text", subType: "html"}, "text/html; charset=utf-8", true},
		{"different subtype", mediaRange{mainType: "text", subType: "html"}, "text/plain", false},
		{"different main type", mediaRange{mainType: "text", subType: "*"}, "application/json", false},
		{"no slash", mediaRange{mainType: "text", subType: "html"}, "texthtml", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.matches(tc.mimeType))
		})
	}
}
