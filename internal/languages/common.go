package languages

import (
	"strings"
)

// normalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// isBlank 判断一行是否为空或只有空白字符。
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
