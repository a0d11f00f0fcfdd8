package util

import "math"

// Round2 四舍五入保留两位小数，仅用于展示层
// 中间计算始终使用未舍入的值，避免累积误差
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
