package merge_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dts/internal/adapters/merge"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/testutil/declscan"
)

func TestMerger_Transform(t *testing.T) {
	m := merge.New()

	code, ok, err := m.Transform("export declare const a: number;\r\n//# sourceMappingURL=a.d.ts.map\r\n\r\n", "/repo/a.d.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "export declare const a: number;\n", code)

	_, ok, err = m.Transform("export const a = 1;", "/repo/a.ts")
	require.NoError(t, err)
	assert.False(t, ok, "non-declaration files are left unchanged")
}

func TestMerger_OutputOptions(t *testing.T) {
	m := merge.New()

	tests := []struct {
		name string
		in   domain.OutputOptions
		want domain.OutputOptions
	}{
		{
			name: "defaults",
			in:   domain.OutputOptions{Dir: "dist"},
			want: domain.OutputOptions{Dir: "dist", EntryFileNames: "[name].d.ts", Format: "es"},
		},
		{
			name: "script extension becomes declaration extension",
			in:   domain.OutputOptions{EntryFileNames: "[name].mjs", Format: "es"},
			want: domain.OutputOptions{EntryFileNames: "[name].d.mts", Format: "es"},
		},
		{
			name: "declaration pattern kept",
			in:   domain.OutputOptions{EntryFileNames: "types/[name].d.cts", Format: "cjs"},
			want: domain.OutputOptions{EntryFileNames: "types/[name].d.cts", Format: "cjs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.OutputOptions(tt.in))
		})
	}
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "src/util", merge.ModuleName("/repo", "/repo/src/util.ts"))
	assert.Equal(t, "types/env", merge.ModuleName("/repo", "/repo/types/env.d.ts"))
	assert.Equal(t, "/vendor/lib/index", merge.ModuleName("/repo", "/vendor/lib/index.d.mts"))
}

func module(id, code string, imports map[string]string) domain.ChunkModule {
	return domain.ChunkModule{ID: id, Code: code, Syntax: declscan.Scan(code), Imports: imports}
}

func TestMerger_RenderChunk(t *testing.T) {
	chunk := domain.Chunk{
		Name:        "index",
		FileName:    "index.d.ts",
		EntryModule: "/repo/src/index.ts",
		Root:        "/repo",
		Externals:   []string{"left-pad"},
		Modules: []domain.ChunkModule{
			module("/repo/src/globals.d.ts", "declare var BUILD: string;\n", nil),
			module("/repo/src/types.ts", `import type { Options } from "left-pad";
export interface Config {
    pad: Options;
}
declare const _default: Config;
export default _default;
declare global {
    interface Window {
        dts: string;
    }
}
`, nil),
			module("/repo/src/util.ts", `/// <reference types="node" />
/// <reference path="./globals.d.ts" />
import DefaultConfig from "./types";
declare function pad(s: string, c?: DefaultConfig): string;
declare function trim(s: string): string;
export { pad, trim as strip };
export * from "./types";
`, map[string]string{"./types": "/repo/src/types.ts", "./globals.d.ts": "/repo/src/globals.d.ts"}),
			module("/repo/src/index.ts", `import { pad } from "./util";
import type { Config } from "./types";
export * from "./util";
export declare function main(c: Config): typeof pad;
export type Lazy = import("./types").Config;
`, map[string]string{"./util": "/repo/src/util.ts", "./types": "/repo/src/types.ts"}),
		},
	}

	got, err := merge.New().RenderChunk("", chunk)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "render_chunk", []byte(got))
}

func TestMerger_RenderChunk_Rewrites(t *testing.T) {
	tests := []struct {
		name    string
		dep     string
		entry   string
		want    []string
		notWant []string
	}{
		{
			name:  "require import",
			dep:   "export declare const a: number;\n",
			entry: "import dep = require(\"./dep\");\nexport declare const b: typeof dep.a;\n",
			want: []string{
				"declare namespace __src_dep {\n    export const a: number;\n}\n",
				"import dep = __src_dep;\nexport declare const b: typeof dep.a;\n",
			},
			notWant: []string{"require("},
		},
		{
			name:  "anonymous default export",
			dep:   "export default function (): void;\n",
			entry: "import run from \"./dep\";\nexport { run };\n",
			want: []string{
				"    export function __default (): void;\n",
				"import run = __src_dep.__default;\nexport { run };\n",
			},
		},
		{
			name:  "named default export",
			dep:   "export default class Client {\n}\n",
			entry: "export { default as Client } from \"./dep\";\nexport { default } from \"./dep\";\n",
			want: []string{
				"    export class Client {\n    }\n    export import __default = Client;\n}\n",
				"export import Client = __src_dep.__default;\nexport default __src_dep.__default;\n",
			},
		},
		{
			name:  "namespace re-export",
			dep:   "export interface A {\n}\n",
			entry: "export * as dep from \"./dep\";\n",
			want:  []string{"export import dep = __src_dep;\n"},
		},
		{
			name:  "external imports of a dependency are hoisted",
			dep:   "import { EventEmitter } from \"node:events\";\nimport \"reflect-metadata\";\nexport declare class Bus extends EventEmitter {\n}\n",
			entry: "export { Bus } from \"./dep\";\n",
			want: []string{
				"import * as __ext_node_events from \"node:events\";\nimport \"reflect-metadata\";\n",
				"    import EventEmitter = __ext_node_events.EventEmitter;\n    export class Bus extends EventEmitter {\n",
				"export import Bus = __src_dep.Bus;\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := domain.Chunk{
				Name:        "index",
				FileName:    "index.d.ts",
				EntryModule: "/repo/src/index.ts",
				Root:        "/repo",
				Modules: []domain.ChunkModule{
					module("/repo/src/dep.ts", tt.dep, nil),
					module("/repo/src/index.ts", tt.entry, map[string]string{"./dep": "/repo/src/dep.ts"}),
				},
			}

			got, err := merge.New().RenderChunk("", chunk)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestMerger_RenderChunk_ScriptBundle(t *testing.T) {
	chunk := domain.Chunk{
		Name:        "globals",
		FileName:    "globals.d.ts",
		EntryModule: "/repo/src/globals.d.ts",
		Root:        "/repo",
		Modules: []domain.ChunkModule{
			module("/repo/src/env.d.ts", "declare var ENV: string;\n", nil),
			module("/repo/src/globals.d.ts", "/// <reference path=\"./env.d.ts\" />\ndeclare var BUILD: string;\n",
				map[string]string{"./env.d.ts": "/repo/src/env.d.ts"}),
		},
	}

	got, err := merge.New().RenderChunk("", chunk)
	require.NoError(t, err)
	assert.Equal(t, merge.Header+"\ndeclare var ENV: string;\n\ndeclare var BUILD: string;\n", got)
}
