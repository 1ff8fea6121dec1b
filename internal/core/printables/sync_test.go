package printables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testTiers(t *testing.T) []Tier {
	t.Helper()
	root := t.TempDir()
	return []Tier{
		{
			Name:      "free",
			SourceDir: filepath.Join(root, "assets", "free"),
			DestDirs: []string{
				filepath.Join(root, "web", "public"),
				filepath.Join(root, "dist", "public"),
			},
		},
		{
			Name:      "pro",
			SourceDir: filepath.Join(root, "assets", "pro"),
			DestDirs: []string{
				filepath.Join(root, "web", "protected"),
			},
		},
	}
}

func TestSyncCopiesToAllDestinations(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "checklist.pdf"), "free pdf bytes")
	writeFile(t, filepath.Join(tiers[1].SourceDir, "meal-plan.pdf"), "pro pdf bytes")

	result := NewSyncer(tiers, zap.NewNop()).Run(Options{})

	assert.Equal(t, 3, result.Copied) // free 兩個目的地 + pro 一個
	assert.Equal(t, 0, result.Errors)

	for _, dest := range tiers[0].DestDirs {
		data, err := os.ReadFile(filepath.Join(dest, "checklist.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "free pdf bytes", string(data))
	}
	data, err := os.ReadFile(filepath.Join(tiers[1].DestDirs[0], "meal-plan.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pro pdf bytes", string(data))
}

func TestSyncSkipsNonPDFFiles(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "notes.txt"), "not a pdf")
	writeFile(t, filepath.Join(tiers[0].SourceDir, "guide.PDF"), "uppercase extension")

	result := NewSyncer(tiers[:1], zap.NewNop()).Run(Options{})

	assert.Equal(t, 2, result.Copied)
	_, err := os.Stat(filepath.Join(tiers[0].DestDirs[0], "notes.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(tiers[0].DestDirs[0], "guide.PDF"))
	assert.NoError(t, err)
}

func TestSyncZeroByteSourceIsError(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "empty.pdf"), "")
	writeFile(t, filepath.Join(tiers[0].SourceDir, "good.pdf"), "content")

	result := NewSyncer(tiers[:1], zap.NewNop()).Run(Options{})

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 2, result.Copied)
	_, err := os.Stat(filepath.Join(tiers[0].DestDirs[0], "empty.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncRemovesZeroByteDestination(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "good.pdf"), "content")
	// 先前失敗的複製留下的空檔案
	writeFile(t, filepath.Join(tiers[0].DestDirs[0], "stale.pdf"), "")

	result := NewSyncer(tiers[:1], zap.NewNop()).Run(Options{})

	assert.Equal(t, 1, result.Cleaned)
	_, err := os.Stat(filepath.Join(tiers[0].DestDirs[0], "stale.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncCleanRemovesOrphans(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "good.pdf"), "content")
	writeFile(t, filepath.Join(tiers[0].DestDirs[0], "removed-from-source.pdf"), "old content")

	// 不帶 --clean 時孤兒檔案保留
	result := NewSyncer(tiers[:1], zap.NewNop()).Run(Options{})
	assert.Equal(t, 0, result.Cleaned)
	_, err := os.Stat(filepath.Join(tiers[0].DestDirs[0], "removed-from-source.pdf"))
	assert.NoError(t, err)

	result = NewSyncer(tiers[:1], zap.NewNop()).Run(Options{Clean: true})
	assert.Equal(t, 1, result.Cleaned)
	_, err = os.Stat(filepath.Join(tiers[0].DestDirs[0], "removed-from-source.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncVerifyPasses(t *testing.T) {
	tiers := testTiers(t)
	writeFile(t, filepath.Join(tiers[0].SourceDir, "a.pdf"), "aaa")
	writeFile(t, filepath.Join(tiers[0].SourceDir, "b.pdf"), "bbb")

	result := NewSyncer(tiers[:1], zap.NewNop()).Run(Options{Verify: true})

	assert.Equal(t, 4, result.Copied)
	assert.Equal(t, 4, result.Verified)
	assert.Equal(t, 0, result.Errors)
}

func TestSyncVerifyDetectsCorruption(t *testing.T) {
	tiers := testTiers(t)
	sourcePath := filepath.Join(tiers[1].SourceDir, "plan.pdf")
	writeFile(t, sourcePath, "original")

	syncer := NewSyncer(tiers[1:], zap.NewNop())
	result := syncer.Run(Options{})
	require.Equal(t, 1, result.Copied)

	// 改寫目的地模擬毀損，大小相同只有哈希不同
	destPath := filepath.Join(tiers[1].DestDirs[0], "plan.pdf")
	require.NoError(t, os.WriteFile(destPath, []byte("0riginal"), 0644))

	err := verifyCopy(destPath, int64(len("original")), mustHash(t, sourcePath))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}

func TestSyncMissingSourceDirIsError(t *testing.T) {
	tiers := []Tier{{
		Name:      "free",
		SourceDir: filepath.Join(t.TempDir(), "does-not-exist"),
		DestDirs:  []string{t.TempDir()},
	}}

	result := NewSyncer(tiers, zap.NewNop()).Run(Options{})
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Copied)
}

func mustHash(t *testing.T, path string) string {
	t.Helper()
	hash, err := hashFile(path)
	require.NoError(t, err)
	return hash
}
