package animation

// FrameUpdaterBuilderOption is a functional option for configuring a FrameUpdater.
type FrameUpdaterBuilderOption func(*frameUpdater)

// WithRenderer sets the renderer invoked once per Advance after all poses are applied.
//
// Parameters:
//   - r: the scene renderer
//
// Returns:
//   - FrameUpdaterBuilderOption: option function to apply
func WithRenderer(r Renderer) FrameUpdaterBuilderOption {
	return func(u *frameUpdater) {
		u.renderer = r
	}
}

// WithScheduler sets the host scheduling primitive Advance re-registers with.
//
// Parameters:
//   - s: the host scheduler
//
// Returns:
//   - FrameUpdaterBuilderOption: option function to apply
func WithScheduler(s Scheduler) FrameUpdaterBuilderOption {
	return func(u *frameUpdater) {
		u.scheduler = s
	}
}

// WithRenderErrorHandler replaces the default logging handler for render failures.
// Passing nil discards render errors.
//
// Parameters:
//   - handler: function receiving the frame number and the renderer's error
//
// Returns:
//   - FrameUpdaterBuilderOption: option function to apply
func WithRenderErrorHandler(handler func(frame uint64, err error)) FrameUpdaterBuilderOption {
	return func(u *frameUpdater) {
		u.onError = handler
	}
}

// WithObject registers a handle and motion during construction, in option order.
//
// Parameters:
//   - h: the scene object handle
//   - m: the motion rule
//
// Returns:
//   - FrameUpdaterBuilderOption: option function to apply
func WithObject(h Handle, m Motion) FrameUpdaterBuilderOption {
	return func(u *frameUpdater) {
		u.Add(h, m)
	}
}
