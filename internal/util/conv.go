package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

func UintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func IntToString(v int) string {
	return strconv.Itoa(v)
}
