package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonPrefixLengthFewerThanTwo(t *testing.T) {
	assert.Equal(t, 0, CommonPrefixLength(nil))
	assert.Equal(t, 0, CommonPrefixLength([]string{}))
	assert.Equal(t, 0, CommonPrefixLength([]string{"/a/b/c"}))
}

func TestCommonPrefixLengthIdentical(t *testing.T) {
	for _, p := range []string{"/a/b/c", "/a/b/", `C:\work\img`, "/proj"} {
		assert.Equal(t, len(p), CommonPrefixLength([]string{p, p}), p)
	}
}

func TestCommonPrefixLengthSharedDirectory(t *testing.T) {
	assert.Equal(t, len("/a/b/"), CommonPrefixLength([]string{"/a/b/c", "/a/b/d"}))
	assert.Equal(t, len("/proj/"), CommonPrefixLength([]string{"/proj/A", "/proj/B"}))
	assert.Equal(t, len("/a/"), CommonPrefixLength([]string{"/a/b", "/a/bc"}))
}

func TestCommonPrefixLengthNothingShared(t *testing.T) {
	assert.Equal(t, 0, CommonPrefixLength([]string{"/a/x", "/b/y"}))
	assert.Equal(t, 0, CommonPrefixLength([]string{"a/x", "b/x"}))
}

// A mismatch must end accumulation even when later segments agree again.
func TestCommonPrefixLengthStopsAtFirstMismatch(t *testing.T) {
	assert.Equal(t, 0, CommonPrefixLength([]string{"/a/x/1", "/b/x/1"}))
	assert.Equal(t, len("/r/"), CommonPrefixLength([]string{"/r/a/same/deep", "/r/b/same/deep"}))
}

func TestCommonPrefixLengthMixedSeparators(t *testing.T) {
	paths := []string{`C:\work/site\a`, `C:/work\site/b`}
	assert.Equal(t, len(`C:\work/site\`), CommonPrefixLength(paths))
}

func TestCommonPrefixLengthClampsToShortest(t *testing.T) {
	paths := []string{"/a/b/c", "/a/b"}
	n := CommonPrefixLength(paths)
	assert.Equal(t, len("/a/b"), n)
	for _, p := range paths {
		assert.NotPanics(t, func() { _ = p[n:] })
	}
}

func TestCommonPrefixLengthThreePaths(t *testing.T) {
	paths := []string{"/home/u/proj/web", "/home/u/proj/api", "/home/u/docs"}
	assert.Equal(t, len("/home/u/"), CommonPrefixLength(paths))
}

func TestTrimSlashes(t *testing.T) {
	cases := map[string]string{
		"/assets/":  "assets",
		"assets":    "assets",
		`\img\`:     "img",
		"/a/b":      "a/b",
		"":          "",
		"/":         "",
		"//double/": "/double",
	}
	for in, want := range cases {
		assert.Equal(t, want, TrimSlashes(in), in)
	}
}

func TestReplaceSeparators(t *testing.T) {
	assert.Equal(t, "/a/b", ReplaceSeparators("/a/b", ""))
	assert.Equal(t, "/a/b", ReplaceSeparators("/a/b", DefaultDelimiter))
	assert.Equal(t, `\a\b`, ReplaceSeparators("/a/b", `\`))
	assert.Equal(t, "a > b > c", ReplaceSeparators(`a/b\c`, " > "))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, filepath.Join("/p", "sub", "x.png"), Join("", "/p", "sub", "x.png"))
	assert.Equal(t, "sub|x.png", Join("|", "sub", "x.png"))
}

func TestEndsWithAny(t *testing.T) {
	assert.True(t, EndsWithAny("/p/node_modules", []string{"node_modules"}))
	assert.True(t, EndsWithAny("/p/a/excluded", []string{"x", "excluded"}))
	assert.False(t, EndsWithAny("/p/node_modules/pkg", []string{"node_modules"}))
	assert.False(t, EndsWithAny("/p/a", []string{""}))
}
