package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosloc/internal/model"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// collect 是测试辅助函数，消费全部通道并按路径排序返回。
func collect(t *testing.T, service *Service, paths ...string) ([]model.SourceFile, []model.ReadError, error) {
	t.Helper()

	files, readErrors, walkErrs := service.Stream(context.Background(), paths)

	var collectedErrors []model.ReadError
	errsDone := make(chan struct{})
	go func() {
		defer close(errsDone)
		for item := range readErrors {
			collectedErrors = append(collectedErrors, item)
		}
	}()

	var collected []model.SourceFile
	for file := range files {
		collected = append(collected, file)
	}
	<-errsDone

	sort.Slice(collected, func(i int, j int) bool {
		return collected[i].Path < collected[j].Path
	})
	return collected, collectedErrors, <-walkErrs
}

func paths(files []model.SourceFile) []string {
	result := make([]string, 0, len(files))
	for _, file := range files {
		result = append(result, file.Path)
	}
	return result
}

// TestStreamSingleFile 验证支持“直接传单文件路径”。
func TestStreamSingleFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "single.go")
	writeFixtureFile(t, filePath, strings.Join([]string{
		"package main",
		"// top comment",
	}, "\n"))

	files, readErrors, err := collect(t, NewService(2), filePath)
	require.NoError(t, err)
	require.Empty(t, readErrors)
	require.Len(t, files, 1)
	assert.Equal(t, "package main\n// top comment", string(files[0].Contents))
}

// TestStreamDirectoryKeepsUnknownExtensions 验证扫描层不按后缀过滤。
func TestStreamDirectoryKeepsUnknownExtensions(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")
	writeFixtureFile(t, filepath.Join(tempDir, "web", "app.js"), "const x = 1;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "app.js.bak"), "const x = 1;\n")
	writeFixtureFile(t, filepath.Join(tempDir, ".git", "HEAD"), "ref: refs/heads/main\n")

	files, _, err := collect(t, NewService(4), tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js.bak", "main.go", "web/app.js"}, paths(files))
}

// TestStreamRespectsGitignore 验证根目录 .gitignore 生效，且可以关闭。
func TestStreamRespectsGitignore(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, ".gitignore"), "build/\n*.log\n")
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")
	writeFixtureFile(t, filepath.Join(tempDir, "build", "gen.go"), "package build\n")
	writeFixtureFile(t, filepath.Join(tempDir, "debug.log"), "trace\n")

	files, _, err := collect(t, NewService(2), tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "main.go"}, paths(files))

	files, _, err = collect(t, NewService(2, WithIgnoreFiles(false)), tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "build/gen.go", "debug.log", "main.go"}, paths(files))
}

func TestStreamMultiplePaths(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFixtureFile(t, filepath.Join(first, "a.py"), "x = 1\n")
	writeFixtureFile(t, filepath.Join(second, "b.rb"), "puts 1\n")

	files, _, err := collect(t, NewService(1), first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.rb"}, paths(files))
}

// TestStreamMissingPath 验证不存在的路径作为致命错误返回。
func TestStreamMissingPath(t *testing.T) {
	_, _, err := collect(t, NewService(1), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat path")

	_, _, err = collect(t, NewService(1), "  ")
	assert.Error(t, err)
}
