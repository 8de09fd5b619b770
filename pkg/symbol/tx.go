package symbol

// TryRun runs f against s as an all-or-nothing transaction.
//
// The stream state is snapshotted before f runs. If f returns an error the
// stream is restored to the snapshot, as though f never ran; otherwise the
// stream keeps whatever state f left it in. TryRun never fails on its own:
// f's results are returned unchanged. Nested calls roll back independently.
func TryRun[T any](s *Stream, f func(*Stream) (T, error)) (T, error) {
	snap := s.cur

	val, err := f(s)
	if err != nil {
		s.cur = snap
	}

	return val, err
}

// Try is TryRun for operations that only report success or failure.
func (s *Stream) Try(f func(*Stream) error) error {
	_, err := TryRun(s, func(st *Stream) (struct{}, error) {
		return struct{}{}, f(st)
	})
	return err
}
