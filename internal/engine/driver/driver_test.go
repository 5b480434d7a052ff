package driver_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/dts/internal/adapters/fs"
	"go.trai.ch/dts/internal/adapters/merge"
	"go.trai.ch/dts/internal/adapters/telemetry"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/dts/internal/core/ports/mocks"
	"go.trai.ch/dts/internal/engine/driver"
	"go.trai.ch/dts/internal/engine/plugin"
	"go.trai.ch/dts/internal/testutil/declscan"
	"go.uber.org/mock/gomock"
)

const root = "/repo"

func project() (fstest.MapFS, map[string]string) {
	files := fstest.MapFS{
		"src/index.ts": {Data: []byte(`import { pad } from "./util";
import type { Options } from "left-pad";

export function main(o: Options): string {
  return pad(String(o.width));
}
export { pad };
`)},
		"src/util.ts": {Data: []byte(`export function pad(s: string): string {
  return s.padStart(10);
}
`)},
		"src/unused.ts":                  {Data: []byte("export const unused = 1;\n")},
		"node_modules/left-pad/index.d.ts": {Data: []byte("export interface Options { width: number }\n")},
	}
	decls := map[string]string{
		"/repo/src/index.ts": `import { pad } from "./util";
import type { Options } from "left-pad";
export declare function main(o: Options): string;
export { pad };
//# sourceMappingURL=index.d.ts.map
`,
		"/repo/src/util.ts":   "export declare function pad(s: string): string;\n",
		"/repo/src/unused.ts": "export declare const unused = 1;\n",
	}
	return files, decls
}

func newLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return logger
}

func TestDriver_Build_BundlesReachableDeclarations(t *testing.T) {
	files, decls := project()
	compiler := newFakeCompiler(root, files, decls)
	compiler.packages["left-pad"] = "/repo/node_modules/left-pad/index.d.ts"
	logger := newLogger(t)

	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracerFromProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)), "test")

	hooks := plugin.New(compiler, merge.New(), logger, domain.ResolvedOptions{}, root)
	d := driver.New(fs.NewMapFSAdapter(root, files), compiler, logger, tracer)

	result, err := d.Build(context.Background(), hooks,
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist"},
	)
	require.NoError(t, err)

	require.Len(t, result.Outputs, 1)
	assert.Equal(t, "/repo/dist/index.d.ts", result.Outputs[0].Name)
	g := goldie.New(t)
	g.Assert(t, "bundle_index", []byte(result.Outputs[0].Text))

	// Each module is emitted once, unreachable modules never.
	assert.Equal(t, map[string]int{"/repo/src/index.ts": 1, "/repo/src/util.ts": 1}, compiler.emits)
	assert.ElementsMatch(t, []string{"/repo/src/index.ts", "/repo/src/util.ts"}, result.WatchFiles)
	assert.Empty(t, result.Warnings)

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"transform", "transform", "render", "build"}, names)
}

func TestDriver_Build_RespectExternal(t *testing.T) {
	files, decls := project()
	compiler := newFakeCompiler(root, files, decls)
	compiler.packages["left-pad"] = "/repo/node_modules/left-pad/index.d.ts"
	logger := newLogger(t)

	hooks := plugin.New(compiler, merge.New(), logger, domain.ResolvedOptions{RespectExternal: true}, root)
	d := driver.New(fs.NewMapFSAdapter(root, files), compiler, logger, telemetry.NewNoOpTracer())

	result, err := d.Build(context.Background(), hooks,
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist"},
	)
	require.NoError(t, err)
	assert.Contains(t, result.Outputs[0].Text, "declare namespace __node_modules_left_pad_index {\n    export interface Options { width: number }\n}\n")
	assert.Contains(t, result.Outputs[0].Text, "import Options = __node_modules_left_pad_index.Options;\n")
	assert.NotContains(t, result.Outputs[0].Text, `from "left-pad"`)
}

func TestDriver_Build_CompileErrorAborts(t *testing.T) {
	files, decls := project()
	delete(decls, "/repo/src/util.ts")
	compiler := newFakeCompiler(root, files, decls)
	logger := newLogger(t)
	logger.EXPECT().Error(gomock.Any())

	hooks := plugin.New(compiler, merge.New(), logger, domain.ResolvedOptions{}, root)
	d := driver.New(fs.NewMapFSAdapter(root, files), compiler, logger, telemetry.NewNoOpTracer())

	_, err := d.Build(context.Background(), hooks,
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist"},
	)
	require.ErrorIs(t, err, domain.ErrCompileFailed)
}

func TestDriver_Build_MissingEntry(t *testing.T) {
	files, decls := project()
	logger := newLogger(t)
	compiler := newFakeCompiler(root, files, decls)
	hooks := plugin.New(compiler, merge.New(), logger, domain.ResolvedOptions{}, root)
	d := driver.New(fs.NewMapFSAdapter(root, files), compiler, logger, telemetry.NewNoOpTracer())

	_, err := d.Build(context.Background(), hooks,
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.ts", "src/missing.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist"},
	)
	require.ErrorContains(t, err, domain.ErrEntryNotFound.Error())
}

// stubHooks resolves nothing, so the driver falls back to its default resolution.
type stubHooks struct {
	chunks []domain.Chunk
}

func (s *stubHooks) Name() string { return "stub" }

func (s *stubHooks) Options(_ context.Context, opts domain.BuildOptions) (domain.BuildOptions, error) {
	return opts, nil
}

func (s *stubHooks) ResolveID(context.Context, string, string) (domain.ResolveResult, bool, error) {
	return domain.ResolveResult{}, false, nil
}

func (s *stubHooks) Transform(_ context.Context, pctx ports.PluginContext, code, id string) (string, bool, error) {
	pctx.AddWatchFile(id)
	return code, true, nil
}

func (s *stubHooks) OutputOptions(opts domain.OutputOptions) domain.OutputOptions {
	return opts
}

func (s *stubHooks) RenderChunk(code string, chunk domain.Chunk) (string, error) {
	s.chunks = append(s.chunks, chunk)
	return code, nil
}

func TestDriver_Build_DefaultResolution(t *testing.T) {
	files := fstest.MapFS{
		"src/index.d.ts": {Data: []byte(`/// <reference path="./globals.d.ts" />
/// <reference path="./missing.d.ts" />
/// <reference types="node" />
import "./a";
import "./b";
import "./c";
import "./d.js";
import "./a";
import "ext";
import "./nope";
import e = require("./e");
/**
 * import { example } from "./doc-example";
 */
export declare const f: typeof e;
`)},
		"src/globals.d.ts": {Data: []byte("declare var BUILD: string;\n")},
		"src/e.d.ts":       {Data: []byte("export declare const e: number;\n")},
		"src/a.d.ts":       {Data: []byte("export type A = 1;\n")},
		"src/b.ts":         {Data: []byte("export type B = 2;\n")},
		"src/c/index.d.ts": {Data: []byte("import \"../a\";\nexport type C = 3;\n")},
		"src/d.ts":         {Data: []byte("export type D = 4;\n")},
	}
	logger := newLogger(t)
	logger.EXPECT().Warn(`could not find referenced file "./missing.d.ts" from src/index.d.ts`)
	logger.EXPECT().Warn(`could not resolve "./nope" from src/index.d.ts`)

	hooks := &stubHooks{}
	d := driver.New(fs.NewMapFSAdapter(root, files), declscan.Scanner{}, logger, telemetry.NewNoOpTracer())

	result, err := d.Build(context.Background(), hooks,
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.d.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist", EntryFileNames: "[name].d.ts"},
	)
	require.NoError(t, err)

	require.Len(t, hooks.chunks, 1)
	chunk := hooks.chunks[0]
	var ids []string
	for _, m := range chunk.Modules {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{
		"/repo/src/globals.d.ts",
		"/repo/src/a.d.ts",
		"/repo/src/b.ts",
		"/repo/src/c/index.d.ts",
		"/repo/src/d.ts",
		"/repo/src/e.d.ts",
		"/repo/src/index.d.ts",
	}, ids)
	assert.Equal(t, []string{"ext", "./nope"}, chunk.Externals)
	assert.Equal(t, "/repo/src/index.d.ts", chunk.EntryModule)
	assert.Equal(t, "index.d.ts", chunk.FileName)
	assert.Equal(t, map[string]string{"../a": "/repo/src/a.d.ts"}, chunk.Modules[3].Imports)
	assert.Equal(t, "/repo/src/globals.d.ts", chunk.Modules[6].Imports["./globals.d.ts"])
	assert.Equal(t, "/repo/src/e.d.ts", chunk.Modules[6].Imports["./e"])
	assert.NotContains(t, chunk.Modules[6].Imports, "./doc-example")
	assert.NotContains(t, chunk.Externals, "./doc-example")

	assert.Equal(t, []string{
		`could not find referenced file "./missing.d.ts" from src/index.d.ts`,
		`could not resolve "./nope" from src/index.d.ts`,
	}, result.Warnings)
	assert.Len(t, result.WatchFiles, 7)
}

func TestDriver_Build_Cancelled(t *testing.T) {
	files := fstest.MapFS{"src/index.d.ts": {Data: []byte("export {};\n")}}
	d := driver.New(fs.NewMapFSAdapter(root, files), declscan.Scanner{}, newLogger(t), telemetry.NewNoOpTracer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Build(ctx, &stubHooks{},
		domain.BuildOptions{Input: domain.Input{Files: []string{"src/index.d.ts"}}, Root: root},
		domain.OutputOptions{Dir: "/repo/dist"},
	)
	require.ErrorIs(t, err, context.Canceled)
}
