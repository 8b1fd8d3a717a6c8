package linkrewrite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		depth int
		want  string
	}{
		{
			name:  "relative",
			in:    `<a href="guides/intro.html">Intro</a>`,
			depth: 2,
			want:  `<a href="../../guides/intro.html">Intro</a>`,
		},
		{
			name:  "root relative",
			in:    `<img src="/static/logo.png">`,
			depth: 1,
			want:  `<img src="../static/logo.png">`,
		},
		{
			name:  "root relative at top",
			in:    `<link href="/css/base.css" rel="stylesheet">`,
			depth: 0,
			want:  `<link href="css/base.css" rel="stylesheet">`,
		},
		{
			name:  "absolute",
			in:    `<a href="https://example.com/x">x</a>`,
			depth: 3,
			want:  `<a href="https://example.com/x">x</a>`,
		},
		{
			name:  "mailto",
			in:    `<a href="mailto:dev@example.com">mail</a>`,
			depth: 1,
			want:  `<a href="mailto:dev@example.com">mail</a>`,
		},
		{
			name:  "protocol relative",
			in:    `<script src="//cdn.example.com/a.js"></script>`,
			depth: 1,
			want:  `<script src="//cdn.example.com/a.js"></script>`,
		},
		{
			name:  "fragment",
			in:    `<a href="#top">top</a>`,
			depth: 1,
			want:  `<a href="#top">top</a>`,
		},
		{
			name:  "empty",
			in:    `<a href="">nothing</a>`,
			depth: 1,
			want:  `<a href="">nothing</a>`,
		},
		{
			name:  "untouched markup kept verbatim",
			in:    "<!DOCTYPE html>\n<DIV Class='x'>a &amp; b<br/></DIV><!-- note -->",
			depth: 2,
			want:  "<!DOCTYPE html>\n<DIV Class='x'>a &amp; b<br/></DIV><!-- note -->",
		},
		{
			name:  "zero depth is a no-op",
			in:    `<a href='guides/x.html'>x</a>`,
			depth: 0,
			want:  `<a href='guides/x.html'>x</a>`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Rewrite(c.in, c.depth)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRewriteNegativeDepth(t *testing.T) {
	_, err := Rewrite("<p>x</p>", -1)
	require.Error(t, err)
}

func TestDepth(t *testing.T) {
	root := filepath.FromSlash("/out")
	cases := []struct {
		dest string
		want int
	}{
		{"/out/index.html", 0},
		{"/out/modules/panel.html", 1},
		{"/out/modules/sdk/ui/button.html", 3},
	}
	for _, c := range cases {
		got, err := Depth(root, filepath.FromSlash(c.dest))
		require.NoError(t, err, c.dest)
		assert.Equal(t, c.want, got, c.dest)
	}

	_, err := Depth(root, filepath.FromSlash("/elsewhere/x.html"))
	require.Error(t, err)
}
