package navigator

import (
	"strings"
	"testing"
	"testing/fstest"

	"f3os/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"dirfile":            {Data: []byte("> secrets\nnotes.txt\n> tools\n")},
		"notes.txt":          {Data: []byte("line one\nline two\n")},
		"secrets/dirfile":    {Data: []byte("plan.txt\nvault.txt\n> deeper\n")},
		"secrets/plan.txt":   {Data: []byte("hack_lvl 2\nheader\n<-<without_hack>->\nthe plan\nstep two\n")},
		"secrets/vault.txt":  {Data: []byte("hack_lvl 5\nno way in\n")},
		"secrets/deeper/a":   {Data: []byte("a\n")},
		"tools/readme.txt":   {Data: []byte("tools\r\nare\r\nhere\r\n")},
		"tools/backup.bak":   {Data: []byte("old\n")},
		"tools/nested/x.txt": {Data: []byte("x\n")},
	}
}

func newTestNavigator(t *testing.T, opts ...Option) *Navigator {
	t.Helper()
	n, err := New(testTree(), opts...)
	require.NoError(t, err)
	return n
}

func TestParseIndex(t *testing.T) {
	l, err := ParseIndex(strings.NewReader("> secrets\nnotes.txt\n> tools\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"secrets", "tools"}, l.Dirs)
	assert.Equal(t, []string{"notes.txt"}, l.Files)
	assert.Equal(t, []string{"> secrets", "> tools", "notes.txt"}, l.Lines())

	t.Run("blank lines and bare markers are skipped", func(t *testing.T) {
		l, err := ParseIndex(strings.NewReader("\n  \n> \nzeta\nalpha\n>noSpace\n> beta  \n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"beta"}, l.Dirs)
		assert.Equal(t, []string{">noSpace", "alpha", "zeta"}, l.Files)
	})

	t.Run("dirs always before files", func(t *testing.T) {
		l, err := ParseIndex(strings.NewReader("a.txt\n> z\n> m\nb.txt\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"> m", "> z", "a.txt", "b.txt"}, l.Lines())
		assert.True(t, l.HasDir("z"))
		assert.False(t, l.HasDir("a.txt"))
	})
}

func TestParseDocument(t *testing.T) {
	t.Run("unrestricted", func(t *testing.T) {
		d, err := ParseDocument("n", strings.NewReader("one\ntwo\n"))
		require.NoError(t, err)
		assert.False(t, d.Restricted)
		lines, err := d.Visible()
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, lines)
		assert.Equal(t, lines, d.Gated())
	})

	t.Run("restricted with sentinel", func(t *testing.T) {
		d, err := ParseDocument("p", strings.NewReader("hack_lvl 1\nsecret\n<-<without_hack>->\npublic\n"))
		require.NoError(t, err)
		assert.True(t, d.Restricted)
		assert.True(t, d.HasSentinel())
		lines, err := d.Visible()
		require.NoError(t, err)
		assert.Equal(t, []string{"public"}, lines)
		assert.Equal(t, []string{"secret", "public"}, d.Gated())
	})

	t.Run("restricted without sentinel", func(t *testing.T) {
		d, err := ParseDocument("v", strings.NewReader("hack_lvl 9\nsecret\n"))
		require.NoError(t, err)
		_, err = d.Visible()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrAccessDenied))
		assert.Equal(t, []string{"secret"}, d.Gated())
	})

	t.Run("sentinel must match exactly", func(t *testing.T) {
		d, err := ParseDocument("v", strings.NewReader("hack_lvl\n <-<without_hack>->\n"))
		require.NoError(t, err)
		assert.False(t, d.HasSentinel())
	})

	t.Run("sentinel as last line reveals nothing", func(t *testing.T) {
		d, err := ParseDocument("v", strings.NewReader("hack_lvl\n<-<without_hack>->"))
		require.NoError(t, err)
		lines, err := d.Visible()
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("empty file", func(t *testing.T) {
		d, err := ParseDocument("e", strings.NewReader(""))
		require.NoError(t, err)
		assert.False(t, d.Restricted)
		assert.Empty(t, d.Lines)
	})
}

func TestNavigation(t *testing.T) {
	n := newTestNavigator(t)
	assert.Equal(t, "/", n.Cwd())
	assert.True(t, n.AtRoot())

	t.Run("up at root does not move", func(t *testing.T) {
		assert.False(t, n.Up())
		assert.Equal(t, "/", n.Cwd())
	})

	t.Run("enter and leave", func(t *testing.T) {
		require.NoError(t, n.Enter("secrets"))
		assert.Equal(t, "/secrets", n.Cwd())
		require.NoError(t, n.Enter("deeper"))
		assert.Equal(t, "/secrets/deeper", n.Cwd())
		assert.True(t, n.Up())
		assert.True(t, n.Up())
		assert.True(t, n.AtRoot())
	})

	t.Run("invalid targets leave the cursor alone", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "missing", "notes.txt", "secrets/deeper", `a\b`} {
			err := n.Enter(name)
			assert.Error(t, err, name)
			assert.Equal(t, "/", n.Cwd(), name)
		}
		assert.True(t, errors.Is(n.Enter("missing"), errors.ErrDirectoryCorrupted))
	})
}

func TestList(t *testing.T) {
	n := newTestNavigator(t)

	l, err := n.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"> secrets", "> tools", "notes.txt"}, l.Lines())

	require.NoError(t, n.Enter("tools"))
	_, err = n.List()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDirectoryCorrupted))
}

func TestListHidden(t *testing.T) {
	n := newTestNavigator(t, WithHidden("*.txt"))
	require.NoError(t, n.Enter("secrets"))

	l, err := n.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"> deeper"}, l.Lines())

	_, err = New(testTree(), WithHidden("[unclosed"))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestRead(t *testing.T) {
	n := newTestNavigator(t)

	d, err := n.Read("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"line one", "line two"}, d.Lines)

	require.NoError(t, n.Enter("tools"))
	d, err = n.Read("readme.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"tools", "are", "here"}, d.Lines, "CRLF is trimmed")
	assert.Equal(t, "tools/readme.txt", d.Name)

	for _, name := range []string{"missing.txt", "nested"} {
		_, err := n.Read(name)
		assert.True(t, errors.Is(err, errors.ErrFileNotFound), name)
	}
	for _, name := range []string{"", ".", "../notes.txt", "/etc/passwd"} {
		_, err := n.Read(name)
		assert.True(t, errors.Is(err, errors.ErrInvalidPath), name)
	}
	assert.Equal(t, "/tools", n.Cwd())
}
