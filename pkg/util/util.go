package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 标准 v4 UUID，用作服务端兜底生成的访客标识
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateShortUUID 去掉中划线的短 UUID，用作 Kafka clientID 等实例后缀
func GenerateShortUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
