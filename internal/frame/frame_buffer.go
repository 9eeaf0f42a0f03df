package frame

// FrameBuffer keeps the previous forwarded grayscale frame, the only state
// carried from one sampled frame to the next.
type FrameBuffer struct {
	previous *Frame
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Push stores current as the previous frame and hands ownership of the
// replaced frame to the caller, who must close it.
func (fb *FrameBuffer) Push(current *Frame) *Frame {
	replaced := fb.previous
	fb.previous = current

	return replaced
}

func (fb *FrameBuffer) Empty() bool {
	return fb.previous == nil
}

func (fb *FrameBuffer) Reset() {
	fb.previous.Close()
	fb.previous = nil
}
