package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	perrors "github.com/macko911/nextjs-sitemap-generator/internal/pages/errors"
)

func TestRemap_NilTransformReturnsInput(t *testing.T) {
	in := PathMap{"/about": {Page: "/about"}}

	out, err := Remap(context.Background(), nil, in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRemap_AddsRootWhenMissing(t *testing.T) {
	replace := TransformFunc(func(_ context.Context, _ PathMap) (PathMap, error) {
		return PathMap{"/x": {Page: "/x"}}, nil
	})

	out, err := Remap(context.Background(), replace, PathMap{"/about": {Page: "/about"}})
	require.NoError(t, err)
	require.Equal(t, PathMap{
		"/":  {Page: "/index"},
		"/x": {Page: "/x"},
	}, out)
}

func TestRemap_KeepsExistingRoot(t *testing.T) {
	identity := TransformFunc(func(_ context.Context, in PathMap) (PathMap, error) { return in, nil })

	out, err := Remap(context.Background(), identity, PathMap{"/": {Page: "/home"}})
	require.NoError(t, err)
	require.Equal(t, "/home", out["/"].Page)
}

func TestRemap_DoesNotMutateInput(t *testing.T) {
	in := PathMap{"/about": {Page: "/about"}}
	mutate := TransformFunc(func(_ context.Context, m PathMap) (PathMap, error) {
		delete(m, "/about")
		return m, nil
	})

	_, err := Remap(context.Background(), mutate, in)
	require.NoError(t, err)
	require.Contains(t, in, "/about")
}

func TestRemap_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	failing := TransformFunc(func(context.Context, PathMap) (PathMap, error) { return nil, boom })

	_, err := Remap(context.Background(), failing, PathMap{})
	require.ErrorIs(t, err, boom)
}

func TestChain_AppliesInOrder(t *testing.T) {
	add := func(key string) PathMapTransform {
		return TransformFunc(func(_ context.Context, in PathMap) (PathMap, error) {
			out := in.Clone()
			out[key] = PageDescriptor{Page: fmt.Sprintf("%s#%d", key, len(in))}
			return out, nil
		})
	}

	out, err := Chain{add("/a"), nil, add("/b")}.Transform(context.Background(), PathMap{})
	require.NoError(t, err)
	require.Equal(t, "/a#0", out["/a"].Page)
	require.Equal(t, "/b#1", out["/b"].Page)
}

func TestFileTransform_LoadsStaticMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
/: {page: /index}
/posts/hello: {page: "/posts/[slug]"}
/docs/intro:
  page: /docs/[...path]
`), 0o600))

	out, err := (&FileTransform{Path: path}).Transform(context.Background(), PathMap{"/ignored": {Page: "/ignored"}})
	require.NoError(t, err)
	require.Equal(t, PathMap{
		"/":            {Page: "/index"},
		"/posts/hello": {Page: "/posts/[slug]"},
		"/docs/intro":  {Page: "/docs/[...path]"},
	}, out)
}

func TestFileTransform_Errors(t *testing.T) {
	dir := t.TempDir()
	missingPage := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(missingPage, []byte("/x: {}\n"), 0o600))
	malformed := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("/x: [unterminated\n"), 0o600))

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), missingPage, malformed} {
		_, err := (&FileTransform{Path: path}).Transform(context.Background(), nil)
		require.ErrorIs(t, err, perrors.ErrTransformFailed, path)
	}
}

// TestHelperProcess is re-executed by the command transform tests as the external program.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("SITEMAPGEN_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("SITEMAPGEN_HELPER_MODE") {
	case "rewrite":
		var in PathMap
		if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		in["/extra"] = PageDescriptor{Page: "/extra"}
		delete(in, "/drop")
		_ = json.NewEncoder(os.Stdout).Encode(in)
	case "fail":
		fmt.Fprintln(os.Stderr, "hook exploded")
		os.Exit(3)
	case "garbage":
		fmt.Fprint(os.Stdout, "not json")
	case "pwd":
		wd, _ := os.Getwd()
		_ = json.NewEncoder(os.Stdout).Encode(PathMap{"/": {Page: wd}})
	case "sleep":
		time.Sleep(10 * time.Second)
	}
	os.Exit(0)
}

func helperCommand(mode string, timeout time.Duration) *CommandTransform {
	return &CommandTransform{
		Command: []string{os.Args[0], "-test.run=TestHelperProcess", "--"},
		Env:     []string{"SITEMAPGEN_HELPER_PROCESS=1", "SITEMAPGEN_HELPER_MODE=" + mode},
		Timeout: timeout,
	}
}

func TestCommandTransform_RoundTripsThroughProgram(t *testing.T) {
	in := PathMap{
		"/":     {Page: "/index", Source: "index.js"},
		"/drop": {Page: "/drop"},
	}

	out, err := helperCommand("rewrite", 0).Transform(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, PathMap{
		"/":      {Page: "/index", Source: "index.js"},
		"/extra": {Page: "/extra"},
	}, out)
}

func TestCommandTransform_RunsInDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cmd := helperCommand("pwd", 0)
	cmd.Dir = dir
	out, err := cmd.Transform(context.Background(), PathMap{})
	require.NoError(t, err)

	got, err := filepath.EvalSymlinks(out["/"].Page)
	require.NoError(t, err)
	require.Equal(t, dir, got)
}

func TestCommandTransform_NonZeroExit(t *testing.T) {
	_, err := helperCommand("fail", 0).Transform(context.Background(), PathMap{})
	require.ErrorIs(t, err, perrors.ErrTransformFailed)
	require.Contains(t, err.Error(), "hook exploded")
}

func TestCommandTransform_UndecodableOutput(t *testing.T) {
	_, err := helperCommand("garbage", 0).Transform(context.Background(), PathMap{})
	require.ErrorIs(t, err, perrors.ErrTransformFailed)
	require.Contains(t, err.Error(), "decode output")
}

func TestCommandTransform_Timeout(t *testing.T) {
	_, err := helperCommand("sleep", 100*time.Millisecond).Transform(context.Background(), PathMap{})
	require.ErrorIs(t, err, perrors.ErrTransformFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCommandTransform_EmptyCommand(t *testing.T) {
	_, err := (&CommandTransform{}).Transform(context.Background(), PathMap{})
	require.ErrorIs(t, err, perrors.ErrTransformFailed)
}
