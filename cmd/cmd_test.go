package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosloc/internal/config"
)

// writeFixtures 落地端到端场景的三个文件。
func writeFixtures(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("var a = 10;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte("var a = 10, b= 20;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.js.bak"), []byte("var a = 10;"), 0o644))
	return dir
}

// execute 是测试辅助函数，在独立的 viper 实例上执行一次命令。
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("test", config.NewViper())
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestScanConsoleStrict(t *testing.T) {
	dir := writeFixtures(t)

	out, err := execute(t, "scan", dir, "--metrics", "total,source,file")
	require.NoError(t, err)

	assert.Contains(t, out, "physical lines : 2\n")
	assert.Contains(t, out, "lines of source code : 2\n")
	assert.Contains(t, out, "\n\n  number of files read : 2\n")
	assert.Contains(t, out, "strict mode")
}

func TestScanConsoleTolerant(t *testing.T) {
	dir := writeFixtures(t)

	out, err := execute(t, "scan", dir, "--tolerant", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "physical lines : 3\n")
	assert.Contains(t, out, "number of files read : 3\n")
	assert.Contains(t, out, "tolerant mode")
}

// TestScanJSONWritesArtifact 验证 json 模式只写文件、不输出控制台报告。
func TestScanJSONWritesArtifact(t *testing.T) {
	dir := writeFixtures(t)
	outputDir := t.TempDir()

	out, err := execute(t, "scan", dir, "--report-type", "json", "--output-dir", outputDir, "--metrics", "total")
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(filepath.Join(outputDir, config.DefaultReportFile))
	require.NoError(t, err)

	var decoded map[string]int64
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, int64(2), decoded["total"])
	assert.Equal(t, int64(2), decoded["source"])
	assert.Equal(t, int64(2), decoded["file"])
	assert.Contains(t, decoded, "empty")
}

func TestScanRejectsMisconfiguration(t *testing.T) {
	dir := writeFixtures(t)

	_, err := execute(t, "scan", dir, "--report-type", "xml")
	assert.ErrorIs(t, err, config.ErrMisconfigured)

	_, err = execute(t, "scan", dir, "--metrics", "total,lines")
	assert.ErrorIs(t, err, config.ErrMisconfigured)
}

func TestScanMissingPath(t *testing.T) {
	_, err := execute(t, "scan", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

// TestScanCustomProfiles 验证 --profiles 让新后缀在严格模式下被识别。
func TestScanCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.nim"), []byte("# doc\necho 1\n"), 0o644))

	profiles := filepath.Join(t.TempDir(), "profiles.yml")
	require.NoError(t, os.WriteFile(profiles, []byte("profiles:\n  - name: Nim\n    extensions: [.nim]\n    line: \"#\"\n"), 0o644))

	out, err := execute(t, "scan", dir, "--profiles", profiles)
	require.NoError(t, err)
	assert.Contains(t, out, "singleline : 1\n")
	assert.Contains(t, out, "number of files read : 1\n")
}

func TestLanguageCommand(t *testing.T) {
	out, err := execute(t, "language")
	require.NoError(t, err)

	assert.Contains(t, out, "LANGUAGE")
	assert.Contains(t, out, "JavaScript")
	assert.Contains(t, out, "/* */")
	assert.Contains(t, out, "NOTE")
	assert.Contains(t, out, "--[[ ]]")
}

// TestLanguageIgnoresReportSettings 验证 language 不受 scan 专用配置影响。
func TestLanguageIgnoresReportSettings(t *testing.T) {
	t.Setenv("GOSLOC_REPORT_TYPE", "xml")

	out, err := execute(t, "language")
	require.NoError(t, err)
	assert.Contains(t, out, "JavaScript")

	_, err = execute(t, "scan", writeFixtures(t))
	assert.ErrorIs(t, err, config.ErrMisconfigured)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gosloc version test\n", out)
}
