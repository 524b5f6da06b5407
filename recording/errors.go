package recording

import "errors"

// Errors returned by container construction and instance resolution.
var (
	ErrNoChannels      = errors.New("recording: no channels")
	ErrNoEpochs        = errors.New("recording: no epochs")
	ErrRaggedData      = errors.New("recording: channel rows differ in length")
	ErrChannelMismatch = errors.New("recording: channel name count mismatch")
	ErrEpochShape      = errors.New("recording: epochs differ in shape")
	ErrRange           = errors.New("recording: invalid sample range")
	ErrUnknownInstance = errors.New("recording: unknown instance type")
)
