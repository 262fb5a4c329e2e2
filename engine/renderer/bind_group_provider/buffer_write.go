package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Size returns the number of bytes the write covers.
func (w BufferWrite) Size() uint64 {
	return uint64(len(w.Data))
}

// Fits reports whether the write lands inside the target buffer's allocation.
// Writes against a missing buffer never fit.
func (w BufferWrite) Fits() bool {
	if w.Provider == nil {
		return false
	}
	size := w.Provider.BufferSize(w.Binding)
	return size > 0 && w.Offset+w.Size() <= size
}
