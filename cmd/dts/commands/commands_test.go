package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dts/cmd/dts/commands"
	"go.trai.ch/dts/internal/app"
	"go.trai.ch/dts/internal/build"
	"go.trai.ch/dts/internal/core/domain"
)

type mockApp struct {
	buildFunc func(ctx context.Context, opts app.BuildOptions) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{buildFunc: func(_ context.Context, opts app.BuildOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock,
			"build", "src/index.ts",
			"-i", "cli=src/cli.ts",
			"-o", "types",
			"-p", "tsconfig.build.json",
			"--respect-external",
			"--compiler-option", "strict=true",
			"--compiler-option", "lib=[es2020, dom]",
			"--verbose",
			"--log-format", "json",
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"src/index.ts", "cli=src/cli.ts"}, captured.Inputs)
		assert.Equal(t, "types", captured.Output)
		assert.Equal(t, "tsconfig.build.json", captured.Tsconfig)
		require.NotNil(t, captured.RespectExternal)
		assert.True(t, *captured.RespectExternal)
		assert.Equal(t, domain.CompilerOptions{
			"strict": true,
			"lib":    []any{"es2020", "dom"},
		}, captured.CompilerOptions)
		assert.True(t, captured.Verbose)
		assert.Equal(t, "json", captured.LogFormat)
		assert.False(t, captured.Watch)
		assert.False(t, captured.Check)
	})

	t.Run("leaves unset options to dts.yaml", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{buildFunc: func(_ context.Context, opts app.BuildOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "build")
		require.NoError(t, err)
		assert.Empty(t, captured.Inputs)
		assert.Nil(t, captured.RespectExternal)
		assert.Nil(t, captured.CompilerOptions)
		assert.Equal(t, "auto", captured.LogFormat)
	})

	t.Run("watch and check are exclusive", func(t *testing.T) {
		called := false
		mock := &mockApp{buildFunc: func(context.Context, app.BuildOptions) error {
			called = true
			return nil
		}}

		_, err := execute(t, mock, "build", "--watch", "--check")
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("rejects malformed compiler options", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "build", "--compiler-option", "strict")
		require.ErrorContains(t, err, "key=value")
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{buildFunc: func(context.Context, app.BuildOptions) error {
			return errors.New("simulated error")
		}}

		_, err := execute(t, mock, "build", "src/index.ts")
		require.EqualError(t, err, "simulated error")
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "dts version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dts version "+build.Version)
}

func TestCommands_VersionShort(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, build.Version+"\n", out)
}

func TestCommands_PersistentLoggingFlags(t *testing.T) {
	var captured app.BuildOptions
	mock := &mockApp{buildFunc: func(_ context.Context, opts app.BuildOptions) error {
		captured = opts
		return nil
	}}

	_, err := execute(t, mock, "-v", "--log-format", "pretty", "build", "src/index.ts")
	require.NoError(t, err)
	assert.True(t, captured.Verbose)
	assert.Equal(t, "pretty", captured.LogFormat)
}
