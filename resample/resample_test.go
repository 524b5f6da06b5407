package resample

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"

	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
)

// rampRaw builds a two-channel recording whose first channel holds the
// sample index, so drawn values reveal which indices were picked.
func rampRaw(t *testing.T, samples int) *recording.Raw {
	t.Helper()
	pos := make([]float64, samples)
	neg := make([]float64, samples)
	for i := range pos {
		pos[i] = float64(i)
		neg[i] = -float64(i)
	}
	info := recording.Info{ChannelNames: []string{"a", "b"}, SampleRate: 250}
	raw, err := recording.NewRaw(info, [][]float64{pos, neg})
	if err != nil {
		t.Fatalf("NewRaw() error = %v", err)
	}
	return raw
}

func collectIndices(t *testing.T, epochs []recording.Container) []int {
	t.Helper()
	var out []int
	for _, c := range epochs {
		for _, v := range c.Data()[0] {
			out = append(out, int(v))
		}
	}
	return out
}

func fieldMap(t *testing.T, pairs []any) map[string]any {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("odd number of report fields: %d", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			t.Fatalf("field key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m
}

type keepFirst struct{ n int }

func (k keepFirst) Filter(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for i, row := range block {
		out[i] = row[:k.n]
	}
	return out
}

type fakeInstance struct{}

func (fakeInstance) Info() recording.Info { return recording.Info{} }

type errBuilder struct{ err error }

func (b errBuilder) Build(recording.Info, [][]float64) (recording.Container, error) {
	return nil, b.err
}

func TestDrawShape(t *testing.T) {
	raw := rampRaw(t, 1000)
	epochs, err := Draw(raw,
		WithEpochCount(5),
		WithEpochLength(50),
		WithSeed(1),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(epochs) != 5 {
		t.Fatalf("Draw() produced %d epochs, want 5", len(epochs))
	}
	for e, c := range epochs {
		data := c.Data()
		if len(data) != 2 {
			t.Fatalf("epoch %d has %d channels, want 2", e, len(data))
		}
		for ch, row := range data {
			if len(row) != 50 {
				t.Fatalf("epoch %d channel %d has %d samples, want 50", e, ch, len(row))
			}
		}
		info := c.Info()
		if info.SampleRate != 250 {
			t.Fatalf("epoch %d sample rate = %v, want 250", e, info.SampleRate)
		}
		if !reflect.DeepEqual(info.ChannelNames, []string{"a", "b"}) {
			t.Fatalf("epoch %d channel names = %v", e, info.ChannelNames)
		}
	}
}

func TestDrawChannelsStayAligned(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithEpochCount(3),
		WithEpochLength(20),
		WithDrawDomain(DomainFullRange),
		WithSeed(9),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for e, c := range epochs {
		data := c.Data()
		for i := range data[0] {
			if data[1][i] != -data[0][i] {
				t.Fatalf("epoch %d sample %d: channels drawn from different indices (%v, %v)",
					e, i, data[0][i], data[1][i])
			}
		}
	}
}

func TestDrawSeedReproducible(t *testing.T) {
	raw := rampRaw(t, 500)
	first, err := Draw(raw, WithEpochCount(4), WithEpochLength(30), WithSeed(11))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	second, err := Draw(raw, WithEpochCount(4), WithEpochLength(30), WithSeed(11))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for e := range first {
		if !reflect.DeepEqual(first[e].Data(), second[e].Data()) {
			t.Fatalf("epoch %d differs between identically seeded draws", e)
		}
	}
}

func TestDrawWithoutReplacementUnique(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithEpochCount(4),
		WithEpochLength(25),
		WithoutReplacement(),
		WithSeed(3),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	got := collectIndices(t, epochs)
	if len(got) != 100 {
		t.Fatalf("drew %d samples, want 100", len(got))
	}
	seen := make([]bool, 100)
	for _, idx := range got {
		if idx < 0 || idx >= 100 {
			t.Fatalf("drawn index %d out of range", idx)
		}
		if seen[idx] {
			t.Fatalf("index %d drawn twice without replacement", idx)
		}
		seen[idx] = true
	}
}

func TestDrawWithoutReplacementOverdraw(t *testing.T) {
	raw := rampRaw(t, 100)
	rng := rand.New(rand.NewPCG(42, 0))
	_, err := Draw(raw,
		WithEpochCount(3),
		WithEpochLength(40),
		WithoutReplacement(),
		WithRNG(rng),
	)
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("Draw() error = %v, want ErrInsufficientSamples", err)
	}

	fresh := rand.New(rand.NewPCG(42, 0))
	if rng.Uint64() != fresh.Uint64() {
		t.Fatal("generator was consumed on a failed draw")
	}
}

func TestDrawDefaultDomainPoolsEpochLength(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithEpochCount(20),
		WithEpochLength(10),
		WithSeed(5),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for _, idx := range collectIndices(t, epochs) {
		if idx >= 10 {
			t.Fatalf("default domain drew index %d outside the first 10 samples", idx)
		}
	}
}

func TestDrawFullRangeDomain(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithEpochCount(20),
		WithEpochLength(10),
		WithDrawDomain(DomainFullRange),
		WithSeed(5),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	max := 0
	for _, idx := range collectIndices(t, epochs) {
		if idx > max {
			max = idx
		}
	}
	if max < 10 {
		t.Fatalf("full-range domain never drew past index 9 (max %d)", max)
	}
}

func TestDrawFullRangeAllowsLongEpochs(t *testing.T) {
	raw := rampRaw(t, 10)
	epochs, err := Draw(raw,
		WithEpochCount(2),
		WithEpochLength(20),
		WithDrawDomain(DomainFullRange),
		WithSeed(1),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(epochs) != 2 {
		t.Fatalf("Draw() produced %d epochs, want 2", len(epochs))
	}
	for _, idx := range collectIndices(t, epochs) {
		if idx >= 10 {
			t.Fatalf("drawn index %d out of range", idx)
		}
	}
}

func TestDrawEpochLengthExceedsPool(t *testing.T) {
	raw := rampRaw(t, 10)
	_, err := Draw(raw, WithEpochCount(2), WithEpochLength(20), WithSeed(1))
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("Draw() error = %v, want ErrInsufficientSamples", err)
	}
}

func TestDrawEpochsFlattened(t *testing.T) {
	low := make([]float64, 10)
	high := make([]float64, 10)
	for i := range low {
		low[i] = float64(i)
		high[i] = float64(10 + i)
	}
	info := recording.Info{ChannelNames: []string{"a"}, SampleRate: 100}
	segmented, err := recording.NewEpochs(info, [][][]float64{{low}, {high}})
	if err != nil {
		t.Fatalf("NewEpochs() error = %v", err)
	}

	epochs, err := Draw(segmented,
		WithEpochCount(2),
		WithEpochLength(10),
		WithoutReplacement(),
		WithSeed(2),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	got := collectIndices(t, epochs)
	sort.Ints(got)
	for i, idx := range got {
		if idx != i {
			t.Fatalf("flattened draw missed index %d (got %v)", i, got)
		}
	}
}

func TestDrawRange(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithRange(recording.Range{Stop: 10}),
		WithEpochCount(1),
		WithEpochLength(10),
		WithoutReplacement(),
		WithSeed(4),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	got := collectIndices(t, epochs)
	sort.Ints(got)
	for i, idx := range got {
		if idx != i {
			t.Fatalf("windowed draw left the window: got %v", got)
		}
	}
}

func TestDrawRejectionPolicy(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw,
		WithRejectionPolicy(keepFirst{n: 10}),
		WithEpochCount(1),
		WithEpochLength(10),
		WithoutReplacement(),
		WithSeed(4),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for _, idx := range collectIndices(t, epochs) {
		if idx >= 10 {
			t.Fatalf("draw ignored the rejection policy: index %d", idx)
		}
	}
}

func TestDrawCoverageDerivesZeroCount(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw, WithEpochLength(80), WithCoverage(0.5), WithSeed(1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(epochs) != 0 {
		t.Fatalf("Draw() produced %d epochs, want 0", len(epochs))
	}
}

func TestDrawCoverageAboveOne(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw, WithEpochCount(15), WithEpochLength(10), WithSeed(1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(epochs) != 15 {
		t.Fatalf("Draw() produced %d epochs, want 15", len(epochs))
	}
}

func TestDrawReporter(t *testing.T) {
	raw := rampRaw(t, 1000)
	rec := &report.Recorder{}
	_, err := Draw(raw,
		WithEpochCount(5),
		WithEpochLength(50),
		WithSeed(1),
		WithReporter(rec),
	)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("reporter saw %d entries, want 1", len(entries))
	}
	if entries[0].Msg != "resampling recording into epochs" {
		t.Fatalf("report message = %q", entries[0].Msg)
	}
	fields := fieldMap(t, entries[0].Fields)
	if fields["epochs"] != 5 {
		t.Fatalf("epochs field = %v, want 5", fields["epochs"])
	}
	if fields["epoch_samples"] != 50 {
		t.Fatalf("epoch_samples field = %v, want 50", fields["epoch_samples"])
	}
	if fields["percent"] != 25.0 {
		t.Fatalf("percent field = %v, want 25", fields["percent"])
	}
}

func TestDrawUnderspecified(t *testing.T) {
	raw := rampRaw(t, 100)
	if _, err := Draw(raw, WithEpochCount(5)); !errors.Is(err, ErrUnderspecified) {
		t.Fatalf("Draw() error = %v, want ErrUnderspecified", err)
	}
}

func TestDrawOptionValidation(t *testing.T) {
	raw := rampRaw(t, 100)
	cases := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero epoch count", WithEpochCount(0), ErrEpochCount},
		{"negative epoch count", WithEpochCount(-2), ErrEpochCount},
		{"zero epoch length", WithEpochLength(0), ErrEpochLength},
		{"negative epoch length", WithEpochLength(-1), ErrEpochLength},
		{"zero coverage", WithCoverage(0), ErrCoverage},
		{"negative coverage", WithCoverage(-0.1), ErrCoverage},
		{"NaN coverage", WithCoverage(math.NaN()), ErrCoverage},
		{"Inf coverage", WithCoverage(math.Inf(1)), ErrCoverage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Draw(raw, tc.opt); !errors.Is(err, tc.want) {
				t.Fatalf("Draw() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDrawInvalidDomain(t *testing.T) {
	raw := rampRaw(t, 100)
	_, err := Draw(raw, WithDrawDomain(DrawDomain(9)))
	if err == nil {
		t.Fatal("Draw() accepted an unknown draw domain")
	}
}

func TestDrawUnknownInstance(t *testing.T) {
	_, err := Draw(fakeInstance{}, WithEpochCount(2), WithEpochLength(5))
	if !errors.Is(err, recording.ErrUnknownInstance) {
		t.Fatalf("Draw() error = %v, want recording.ErrUnknownInstance", err)
	}
}

func TestDrawBuilderError(t *testing.T) {
	raw := rampRaw(t, 100)
	boom := errors.New("no container for you")
	_, err := Draw(raw,
		WithEpochCount(2),
		WithEpochLength(5),
		WithSeed(1),
		WithBuilder(errBuilder{err: boom}),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("Draw() error = %v, want builder error", err)
	}
}

func TestDrawSkipsNilOptions(t *testing.T) {
	raw := rampRaw(t, 100)
	epochs, err := Draw(raw, nil, WithEpochCount(2), WithEpochLength(5), WithSeed(1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(epochs) != 2 {
		t.Fatalf("Draw() produced %d epochs, want 2", len(epochs))
	}
}
