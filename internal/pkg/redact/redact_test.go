package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "long local", in: "foobar@example.com", want: "fo***@example.com"},
		{name: "short local", in: "ab@ex.com", want: "***@ex.com"},
		{name: "no at", in: "no-at-here", want: "***"},
		{name: "multiple at", in: "a@b@c", want: "***"},
		{name: "empty", in: "", want: "***"},
		{name: "unicode local", in: "юзер@пример.рф", want: "юз***@пример.рф"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestToken(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Token(""))
	require.Equal(t, "***", Token("short"))
	require.Equal(t, "eyJhbGci***", Token("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
}
