package util

// Batch 把 items 切成每组最多 size 个的副本，size <= 0 时整体作为一组。
// 写库时每组对应一次 InsertMany/UNWIND，副本保证调用方修改不影响原切片。
func Batch[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size > len(items) {
		size = len(items)
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for rest := items; len(rest) > 0; {
		n := min(size, len(rest))
		out = append(out, append([]T(nil), rest[:n]...))
		rest = rest[n:]
	}
	return out
}
