package config_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dts/internal/adapters/config"
	"go.trai.ch/dts/internal/adapters/fs"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const root = "/repo"

func newLoader(t *testing.T, files fstest.MapFS) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger, fs.NewMapFSAdapter(root, files)), mockLogger
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cwd     string
		want    *domain.Config
	}{
		{
			name: "single input",
			content: `
version: "1"
input: src/index.ts
`,
			cwd: "/repo",
			want: &domain.Config{
				Root:  "/repo",
				Input: domain.Input{Files: []string{"src/index.ts"}},
			},
		},
		{
			name: "list input found from a subdirectory",
			content: `
input:
  - src/index.ts
  - src/cli.ts
output: build/types
tsconfig: tsconfig.build.json
`,
			cwd: "/repo/src/nested",
			want: &domain.Config{
				Root:     "/repo",
				Input:    domain.Input{Files: []string{"src/index.ts", "src/cli.ts"}},
				Output:   "/repo/build/types",
				Tsconfig: "tsconfig.build.json",
			},
		},
		{
			name: "named input with compiler options",
			content: `
root: packages/core
input:
  main: src/index.ts
tsconfig: ./configs/tsconfig.types.json
respectExternal: true
compilerOptions:
  strict: true
  paths:
    "@/*": ["src/*"]
`,
			cwd: "/repo",
			want: &domain.Config{
				Root:            "/repo/packages/core",
				Input:           domain.Input{Named: map[string]string{"main": "src/index.ts"}},
				Tsconfig:        "/repo/configs/tsconfig.types.json",
				RespectExternal: true,
				CompilerOptions: domain.CompilerOptions{
					"strict": true,
					"paths":  map[string]any{"@/*": []any{"src/*"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, fstest.MapFS{
				domain.ConfigFileName: {Data: []byte(tt.content)},
				"src/nested/.keep":    {Data: []byte{}},
			})

			cfg, err := loader.Load(filepath.FromSlash(tt.cwd))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoader_Load_NoConfig(t *testing.T) {
	loader, _ := newLoader(t, fstest.MapFS{
		"src/index.ts": {Data: []byte("export {};")},
	})

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoader_Load_UnknownVersionWarns(t *testing.T) {
	loader, mockLogger := newLoader(t, fstest.MapFS{
		domain.ConfigFileName: {Data: []byte("version: \"2\"\ninput: a.ts\n")},
	})
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts"}, cfg.Input.Files)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "input: [src/index.ts\n",
			wantErr: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "wrong input shape",
			content: "input:\n  - [nested]\n",
			wantErr: domain.ErrConfigParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, fstest.MapFS{
				domain.ConfigFileName: {Data: []byte(tt.content)},
			})

			_, err := loader.Load(root)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
