package tags

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoTag struct {
	markup string
}

func (e echoTag) Render(ctx Context) (string, error) {
	return "[" + e.markup + ":" + ctx.String("page.title") + "]", nil
}

type failTag struct{}

var errRender = errors.New("render failed")

func (failTag) Render(Context) (string, error) {
	return "", errRender
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.Register("echo", func(markup string) Tag { return echoTag{markup: markup} }))
	require.NoError(t, r.Register("fail", func(string) Tag { return failTag{} }))

	return r
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	err := r.Register("echo", func(string) Tag { return failTag{} })
	require.Equal(t, DuplicateTagError{Name: "echo"}, err)
	require.Equal(t, []string{"echo", "fail"}, r.Names())

	_, ok := r.Lookup("missing")
	require.False(t, ok)
}

func TestExpand(t *testing.T) {
	r := newTestRegistry(t)
	ctx := Context{Page: map[string]any{"title": "Hi"}}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "no tags", src: "plain text\n", want: "plain text\n"},
		{name: "single", src: "a {% echo left 0 caption %} b", want: "a [left 0 caption:Hi] b"},
		{name: "tight", src: "{%echo 1%}", want: "[1:Hi]"},
		{name: "no markup", src: "{% echo %}", want: "[:Hi]"},
		{name: "multiple", src: "{% echo 0 %}\n\n{% echo 1 %}\n", want: "[0:Hi]\n\n[1:Hi]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Expand([]byte(tt.src), ctx)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestExpandErrors(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Expand([]byte("{% nope 0 %}"), Context{})
	require.Equal(t, UnknownTagError{Name: "nope"}, err)

	_, err = r.Expand([]byte("x {% fail %}"), Context{})
	require.ErrorIs(t, err, errRender)
	require.True(t, strings.Contains(err.Error(), "fail"))
}
