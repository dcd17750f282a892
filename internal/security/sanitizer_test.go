package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextSanitizer(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "Need a /22 for Delhi office", want: "Need a /22 for Delhi office"},
		{name: "ampersand kept", in: "R&D lab", want: "R&D lab"},
		{name: "tags stripped", in: "<b>urgent</b> block", want: "urgent block"},
		{name: "script removed", in: "hi<script>alert(1)</script>", want: "hi"},
		{name: "event handler removed", in: `<img src=x onerror="alert(1)">203.0.113.0/24`, want: "203.0.113.0/24"},
		{name: "trimmed", in: "  padded  ", want: "padded"},
		{name: "encoded script removed", in: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{name: "encoded tag stripped", in: "&lt;b&gt;bold&lt;/b&gt; text", want: "bold text"},
		{name: "double encoded tag stripped", in: "&amp;lt;i&amp;gt;x&amp;lt;/i&amp;gt;", want: "x"},
		{name: "less than kept", in: "need 1 < 2 blocks", want: "need 1 < 2 blocks"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, s.Sanitize(tc.in))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	s := NewTextSanitizer()
	once := s.Sanitize(`<p>Tom & "Jerry"</p>`)
	require.Equal(t, once, s.Sanitize(once))
	require.Equal(t, `Tom & "Jerry"`, once)

	for _, in := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;img src=x onerror=alert(1)&gt;203.0.113.0/24",
		"&amp;lt;b&amp;gt;hi",
	} {
		once := s.Sanitize(in)
		require.NotContains(t, once, "<", in)
		require.Equal(t, once, s.Sanitize(once), in)
	}
}
