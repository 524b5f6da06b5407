// Package recording provides the multichannel containers shared by the
// preprocessing packages: continuous streams, segmented epochs, and the
// collaborator interfaces used to window, mask, and rebuild them.
//
// Data is laid out one row per channel, so a continuous recording is a
// (channels, samples) block and a segmented one is a slice of such blocks.
// Constructors hold the slices they are given without copying; callers must
// not mutate them afterwards. Operations on recordings always allocate
// fresh output.
package recording

import "fmt"

// IrregularRate marks containers whose sample axis is no longer uniform in
// time, e.g. after peak extraction. Sample indices of such containers must
// not be interpreted as timestamps.
const IrregularRate float64 = -1

// Info describes the channel layout and timing of a recording.
type Info struct {
	ChannelNames []string
	SampleRate   float64
}

// NumChannels returns the number of named channels.
func (in Info) NumChannels() int {
	return len(in.ChannelNames)
}

// WithSampleRate returns a copy of the info with the sampling rate replaced.
// The channel names are copied as well, so the two infos share nothing.
func (in Info) WithSampleRate(rate float64) Info {
	return Info{
		ChannelNames: append([]string(nil), in.ChannelNames...),
		SampleRate:   rate,
	}
}

// Raw is a continuous multichannel recording.
type Raw struct {
	info Info
	data [][]float64
}

// NewRaw wraps a (channels, samples) block as a continuous recording. All
// channel rows must share one length, and when info names channels their
// count must match the row count.
func NewRaw(info Info, data [][]float64) (*Raw, error) {
	if err := validateBlock(data); err != nil {
		return nil, err
	}
	if err := validateNames(info, len(data)); err != nil {
		return nil, err
	}
	return &Raw{info: info, data: data}, nil
}

// Info returns the recording metadata.
func (r *Raw) Info() Info {
	return r.info
}

// Data returns the underlying (channels, samples) block. The block is shared
// with the recording and must be treated as read-only.
func (r *Raw) Data() [][]float64 {
	return r.data
}

// ChannelCount returns the number of channel rows.
func (r *Raw) ChannelCount() int {
	return len(r.data)
}

// SampleCount returns the number of samples per channel.
func (r *Raw) SampleCount() int {
	if len(r.data) == 0 {
		return 0
	}
	return len(r.data[0])
}

// Epochs is a segmented recording: a series of equally shaped
// (channels, samples) blocks.
type Epochs struct {
	info Info
	data [][][]float64
}

// NewEpochs wraps per-epoch blocks as a segmented recording. At least one
// epoch is required and all epochs must share channel count and length.
func NewEpochs(info Info, data [][][]float64) (*Epochs, error) {
	if len(data) == 0 {
		return nil, ErrNoEpochs
	}
	for _, epoch := range data {
		if err := validateBlock(epoch); err != nil {
			return nil, err
		}
	}
	channels := len(data[0])
	width := len(data[0][0])
	for _, epoch := range data[1:] {
		if len(epoch) != channels || len(epoch[0]) != width {
			return nil, fmt.Errorf("%w: (%d, %d) and (%d, %d)",
				ErrEpochShape, channels, width, len(epoch), len(epoch[0]))
		}
	}
	if err := validateNames(info, channels); err != nil {
		return nil, err
	}
	return &Epochs{info: info, data: data}, nil
}

// Info returns the recording metadata.
func (e *Epochs) Info() Info {
	return e.info
}

// Data returns the underlying (epochs, channels, samples) blocks, shared
// with the recording and read-only.
func (e *Epochs) Data() [][][]float64 {
	return e.data
}

// EpochCount returns the number of epochs.
func (e *Epochs) EpochCount() int {
	return len(e.data)
}

// ChannelCount returns the number of channel rows per epoch.
func (e *Epochs) ChannelCount() int {
	return len(e.data[0])
}

// SampleCount returns the number of samples per channel of one epoch.
func (e *Epochs) SampleCount() int {
	return len(e.data[0][0])
}

// Epoch returns the block of epoch i.
func (e *Epochs) Epoch(i int) [][]float64 {
	return e.data[i]
}

func validateBlock(block [][]float64) error {
	if len(block) == 0 {
		return ErrNoChannels
	}
	width := len(block[0])
	for _, row := range block[1:] {
		if len(row) != width {
			return fmt.Errorf("%w: %d and %d", ErrRaggedData, width, len(row))
		}
	}
	return nil
}

func validateNames(info Info, channels int) error {
	if len(info.ChannelNames) > 0 && len(info.ChannelNames) != channels {
		return fmt.Errorf("%w: %d names for %d channel rows",
			ErrChannelMismatch, len(info.ChannelNames), channels)
	}
	return nil
}
