package recording

// Container is the output of a preprocessing operation: a data block plus
// the info describing it.
type Container interface {
	Info() Info
	Data() [][]float64
}

// Builder constructs an output container from a (channels, samples) block.
// Callers integrating with their own container types supply a custom
// Builder; everything else uses RawBuilder.
type Builder interface {
	Build(info Info, data [][]float64) (Container, error)
}

// RawBuilder is the default Builder. It wraps the block in a *Raw.
type RawBuilder struct{}

// Build implements Builder.
func (RawBuilder) Build(info Info, data [][]float64) (Container, error) {
	return NewRaw(info, data)
}
