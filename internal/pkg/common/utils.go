package common

import (
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID，作為缺少 X-Request-ID 時的替補請求識別碼
func GenerateUUID() string {
	return uuid.New().String()
}
