package pipeline

import "gosloc/internal/model"

// Absorb 是纯函数形式的折叠：返回 totals 叠加 result 后的新值。
// 加法满足交换律与结合律，吸收顺序不影响最终结果。
func Absorb(totals model.Totals, result model.FileResult) model.Totals {
	totals.AddFileResult(result)
	return totals
}

// Accumulator 持有一次运行中唯一可变的 Totals。
// 只在流水线的单一消费循环中调用，不需要加锁。
type Accumulator struct {
	totals model.Totals
}

// Absorb 吸收一个文件结果。
func (a *Accumulator) Absorb(result model.FileResult) {
	a.totals = Absorb(a.totals, result)
}

// Totals 返回当前累计值的副本。
func (a *Accumulator) Totals() model.Totals {
	return a.totals
}
