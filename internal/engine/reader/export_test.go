package reader

// MemoLen returns the number of memoized records.
func (r *Reader) MemoLen() int {
	return r.memo.len()
}
