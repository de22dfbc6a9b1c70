package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/ojformat"
)

const arrayFormat = "<var>N</var>\n<var>A_1</var> <var>A_2</var> <var>...</var> <var>A_N</var>\n"

func newTestContext(format string) (*Context, *bytes.Buffer) {
	var buf bytes.Buffer

	return &Context{Config: &ojformat.Config{LogLevel: "info"}, Format: format, Out: &buf}, &buf
}

func TestVersionCmd(t *testing.T) {
	ctx, buf := newTestContext("")

	assert.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Equal(t, "ojformat v0.1.0\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		ctx, buf := newTestContext("json")

		assert.NoError(t, parseFormat(ctx, arrayFormat))

		var report map[string]any
		assert.NoError(t, json.Unmarshal(buf.Bytes(), &report))

		tree, ok := report["tree"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "sequence", tree["kind"])

		variables, ok := report["variables"].([]any)
		assert.True(t, ok)
		assert.Equal(t, 2, len(variables))
	})

	t.Run("yaml", func(t *testing.T) {
		ctx, buf := newTestContext("yaml")

		assert.NoError(t, parseFormat(ctx, arrayFormat))
		assert.Contains(t, buf.String(), "kind: sequence")
		assert.Contains(t, buf.String(), "name: A")
	})

	t.Run("xml", func(t *testing.T) {
		ctx, buf := newTestContext("xml")

		assert.NoError(t, parseFormat(ctx, arrayFormat))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "<?xml"))
		assert.Contains(t, out, "<ojformat>")
		assert.Contains(t, out, `<loop counter="i" size="N">`)
	})

	t.Run("unknown output format", func(t *testing.T) {
		ctx, _ := newTestContext("toml")

		assert.Error(t, parseFormat(ctx, arrayFormat))
	})

	t.Run("syntax error", func(t *testing.T) {
		ctx, buf := newTestContext("yaml")

		assert.Error(t, parseFormat(ctx, "A_$\n"))
		assert.Zero(t, buf.String())
	})
}

func TestInferCmd(t *testing.T) {
	dir := t.TempDir()
	samples := []string{
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "2.txt"),
	}

	assert.NoError(t, os.WriteFile(samples[0], []byte("3\n1 2 3\n"), 0o644))
	assert.NoError(t, os.WriteFile(samples[1], []byte("2\n10 20\n"), 0o644))

	ctx, buf := newTestContext("json")
	ctx.Config.Search.IterationLimit = 10000

	assert.NoError(t, (&InferCmd{Samples: samples}).Run(ctx))

	var report map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.NotZero(t, report["text"])
	assert.NotZero(t, report["source"])
}

func TestInferCmdWithoutSamples(t *testing.T) {
	ctx, _ := newTestContext("json")

	assert.IsError(t, (&InferCmd{}).Run(ctx), ojformat.ErrNoSamples)
}
