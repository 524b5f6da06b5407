package recording

import (
	"errors"
	"testing"
)

func TestNewRawValidation(t *testing.T) {
	if _, err := NewRaw(Info{}, nil); !errors.Is(err, ErrNoChannels) {
		t.Fatalf("NewRaw(nil) error = %v, want ErrNoChannels", err)
	}
	ragged := [][]float64{{1, 2, 3}, {1, 2}}
	if _, err := NewRaw(Info{}, ragged); !errors.Is(err, ErrRaggedData) {
		t.Fatalf("NewRaw(ragged) error = %v, want ErrRaggedData", err)
	}
	info := Info{ChannelNames: []string{"c1"}}
	if _, err := NewRaw(info, [][]float64{{1}, {2}}); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("NewRaw(name mismatch) error = %v, want ErrChannelMismatch", err)
	}
}

func TestNewRawShape(t *testing.T) {
	info := Info{ChannelNames: []string{"c1", "c2"}, SampleRate: 100}
	raw, err := NewRaw(info, [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("NewRaw() error = %v", err)
	}
	if raw.ChannelCount() != 2 || raw.SampleCount() != 3 {
		t.Fatalf("shape = (%d, %d), want (2, 3)", raw.ChannelCount(), raw.SampleCount())
	}
	if raw.Info().SampleRate != 100 {
		t.Fatalf("SampleRate = %v, want 100", raw.Info().SampleRate)
	}
}

func TestNewEpochsValidation(t *testing.T) {
	if _, err := NewEpochs(Info{}, nil); !errors.Is(err, ErrNoEpochs) {
		t.Fatalf("NewEpochs(nil) error = %v, want ErrNoEpochs", err)
	}
	mismatched := [][][]float64{
		{{1, 2}, {3, 4}},
		{{1, 2, 3}, {4, 5, 6}},
	}
	if _, err := NewEpochs(Info{}, mismatched); !errors.Is(err, ErrEpochShape) {
		t.Fatalf("NewEpochs(mismatched) error = %v, want ErrEpochShape", err)
	}
	ragged := [][][]float64{{{1, 2}, {3}}}
	if _, err := NewEpochs(Info{}, ragged); !errors.Is(err, ErrRaggedData) {
		t.Fatalf("NewEpochs(ragged) error = %v, want ErrRaggedData", err)
	}
}

func TestNewEpochsShape(t *testing.T) {
	data := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
		{{9, 10}, {11, 12}},
	}
	ep, err := NewEpochs(Info{ChannelNames: []string{"c1", "c2"}}, data)
	if err != nil {
		t.Fatalf("NewEpochs() error = %v", err)
	}
	if ep.EpochCount() != 3 || ep.ChannelCount() != 2 || ep.SampleCount() != 2 {
		t.Fatalf("shape = (%d, %d, %d), want (3, 2, 2)",
			ep.EpochCount(), ep.ChannelCount(), ep.SampleCount())
	}
	if ep.Epoch(1)[0][0] != 5 {
		t.Fatalf("Epoch(1)[0][0] = %v, want 5", ep.Epoch(1)[0][0])
	}
}

func TestInfoWithSampleRate(t *testing.T) {
	orig := Info{ChannelNames: []string{"c1", "c2"}, SampleRate: 100}
	repl := orig.WithSampleRate(IrregularRate)
	if repl.SampleRate != IrregularRate {
		t.Fatalf("SampleRate = %v, want %v", repl.SampleRate, IrregularRate)
	}
	repl.ChannelNames[0] = "mutated"
	if orig.ChannelNames[0] != "c1" {
		t.Fatal("WithSampleRate must copy channel names")
	}
}
