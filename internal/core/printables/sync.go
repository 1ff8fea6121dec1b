package printables

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Tier 對應一個存取層級的可列印素材來源與部署目的地
type Tier struct {
	Name      string   // "free" 或 "pro"
	SourceDir string   // 正本目錄
	DestDirs  []string // 部署目的地
}

// DefaultTiers 固定的來源與目的地配置
// free 素材發佈到兩個公開路徑，pro 素材只進受保護路徑
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name:      "free",
			SourceDir: filepath.Join("assets", "printables", "free"),
			DestDirs: []string{
				filepath.Join("web", "public", "printables"),
				filepath.Join("dist", "public", "printables"),
			},
		},
		{
			Name:      "pro",
			SourceDir: filepath.Join("assets", "printables", "pro"),
			DestDirs: []string{
				filepath.Join("web", "protected", "printables"),
			},
		},
	}
}

// Options 同步選項
type Options struct {
	Clean  bool // 刪除目的地中來源沒有的檔案
	Verify bool // 複製後以哈希驗證每個目的地
}

// Result 同步結果統計
type Result struct {
	Copied   int // 成功複製的檔案數（每個目的地各計一次）
	Cleaned  int // 清除的檔案數
	Verified int // 通過驗證的檔案數
	Errors   int // 複製與驗證錯誤總數
}

// Syncer 可列印素材同步器
type Syncer struct {
	tiers  []Tier
	logger *zap.Logger
}

// NewSyncer 創建同步器
func NewSyncer(tiers []Tier, logger *zap.Logger) *Syncer {
	return &Syncer{
		tiers:  tiers,
		logger: logger,
	}
}

// Run 依序處理每個層級：建目錄、清理、複製、驗證
// 錯誤逐檔記錄並累計，不中斷後續檔案
func (s *Syncer) Run(opts Options) *Result {
	result := &Result{}

	for _, tier := range s.tiers {
		s.logger.Info("開始同步層級",
			zap.String("tier", tier.Name),
			zap.String("source", tier.SourceDir),
		)

		// 確保目的地目錄存在
		for _, dest := range tier.DestDirs {
			if err := os.MkdirAll(dest, 0755); err != nil {
				s.logger.Error("建立目的地目錄失敗",
					zap.String("dir", dest),
					zap.Error(err),
				)
				result.Errors++
			}
		}

		s.cleanupTier(tier, opts, result)
		s.syncTier(tier, result)
		if opts.Verify {
			s.verifyTier(tier, result)
		}
	}

	s.logger.Info("同步完成",
		zap.Int("copied", result.Copied),
		zap.Int("cleaned", result.Cleaned),
		zap.Int("verified", result.Verified),
		zap.Int("errors", result.Errors),
	)

	return result
}

// cleanupTier 清理目的地：零位元組檔案一律刪除，--clean 時再刪除孤兒檔案
func (s *Syncer) cleanupTier(tier Tier, opts Options, result *Result) {
	sourceNames := make(map[string]struct{})
	if entries, err := os.ReadDir(tier.SourceDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				sourceNames[entry.Name()] = struct{}{}
			}
		}
	}

	for _, dest := range tier.DestDirs {
		entries, err := os.ReadDir(dest)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dest, entry.Name())

			info, err := entry.Info()
			if err != nil {
				continue
			}

			remove := false
			reason := ""
			if info.Size() == 0 {
				remove = true
				reason = "zero-byte"
			} else if opts.Clean {
				if _, exists := sourceNames[entry.Name()]; !exists {
					remove = true
					reason = "orphan"
				}
			}

			if !remove {
				continue
			}

			if err := os.Remove(path); err != nil {
				s.logger.Error("刪除檔案失敗",
					zap.String("file", path),
					zap.Error(err),
				)
				result.Errors++
				continue
			}
			s.logger.Info("已清除檔案",
				zap.String("file", path),
				zap.String("reason", reason),
			)
			result.Cleaned++
		}
	}
}

// syncTier 複製來源 .pdf 到每個目的地
// 零位元組來源視為錯誤並跳過；複製後比對位元組大小
func (s *Syncer) syncTier(tier Tier, result *Result) {
	entries, err := os.ReadDir(tier.SourceDir)
	if err != nil {
		s.logger.Error("讀取來源目錄失敗",
			zap.String("dir", tier.SourceDir),
			zap.Error(err),
		)
		result.Errors++
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		sourcePath := filepath.Join(tier.SourceDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Error("讀取來源檔案資訊失敗",
				zap.String("file", sourcePath),
				zap.Error(err),
			)
			result.Errors++
			continue
		}

		if info.Size() == 0 {
			s.logger.Error("來源檔案為空，跳過",
				zap.String("file", sourcePath),
			)
			result.Errors++
			continue
		}

		for _, dest := range tier.DestDirs {
			destPath := filepath.Join(dest, entry.Name())
			if err := copyFile(sourcePath, destPath); err != nil {
				s.logger.Error("複製失敗",
					zap.String("source", sourcePath),
					zap.String("dest", destPath),
					zap.Error(err),
				)
				result.Errors++
				continue
			}

			destInfo, err := os.Stat(destPath)
			if err != nil || destInfo.Size() != info.Size() {
				s.logger.Error("複製後大小不符",
					zap.String("source", sourcePath),
					zap.String("dest", destPath),
				)
				result.Errors++
				continue
			}

			s.logger.Info("已複製",
				zap.String("source", sourcePath),
				zap.String("dest", destPath),
				zap.Int64("bytes", info.Size()),
			)
			result.Copied++
		}
	}
}

// verifyTier 驗證每個來源檔案在所有目的地的存在、大小與哈希
func (s *Syncer) verifyTier(tier Tier, result *Result) {
	entries, err := os.ReadDir(tier.SourceDir)
	if err != nil {
		result.Errors++
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		sourcePath := filepath.Join(tier.SourceDir, entry.Name())
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			// 零位元組來源已在複製階段計入錯誤
			continue
		}

		sourceHash, err := hashFile(sourcePath)
		if err != nil {
			s.logger.Error("計算來源哈希失敗",
				zap.String("file", sourcePath),
				zap.Error(err),
			)
			result.Errors++
			continue
		}

		for _, dest := range tier.DestDirs {
			destPath := filepath.Join(dest, entry.Name())
			if err := verifyCopy(destPath, info.Size(), sourceHash); err != nil {
				s.logger.Error("驗證失敗",
					zap.String("file", destPath),
					zap.Error(err),
				)
				result.Errors++
				continue
			}
			s.logger.Info("驗證通過",
				zap.String("file", destPath),
				zap.String("sha256", sourceHash[:12]),
			)
			result.Verified++
		}
	}
}

// verifyCopy 檢查目的地檔案：存在、非空、大小一致、哈希一致
func verifyCopy(path string, wantSize int64, wantHash string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("zero-byte file")
	}
	if info.Size() != wantSize {
		return fmt.Errorf("size mismatch: got %d, want %d", info.Size(), wantSize)
	}

	hash, err := hashFile(path)
	if err != nil {
		return err
	}
	if hash != wantHash {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

// copyFile 複製單一檔案
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// hashFile 計算整檔 SHA-256
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
