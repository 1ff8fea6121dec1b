package main

import (
	"fmt"
	"os"

	"camp-planner/internal/core/printables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cleanFlag  bool
	verifyFlag bool
)

// newLogger 建立輸出到標準輸出的 logger
// 同步工具不讀設定檔，也不寫日誌檔
func newLogger() *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	return zap.New(core)
}

var rootCmd = &cobra.Command{
	Use:   "sync-printables",
	Short: "將可列印素材從正本目錄同步到各部署目的地",
	Long: `將 free 與 pro 兩個層級的可列印 PDF 從正本目錄複製到固定的部署目的地。
零位元組的目的地檔案一律清除；--clean 時另外清除來源沒有的孤兒檔案；
--verify 時逐檔比對大小與 SHA-256。有任何錯誤時以非零狀態碼結束。`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer logger.Sync()

		syncer := printables.NewSyncer(printables.DefaultTiers(), logger)
		result := syncer.Run(printables.Options{
			Clean:  cleanFlag,
			Verify: verifyFlag,
		})

		if result.Errors > 0 {
			os.Exit(1)
		}
	},
}

func main() {
	rootCmd.Flags().BoolVar(&cleanFlag, "clean", false, "刪除目的地中來源沒有的檔案")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "複製後以 SHA-256 驗證每個目的地")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
