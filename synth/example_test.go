package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-eeg/synth"
)

func ExampleGenerator_Raw() {
	g := synth.New(synth.WithSeed(7))
	raw, _ := g.Raw(4, 500)
	fmt.Printf("channels=%d samples=%d rate=%g\n",
		raw.ChannelCount(), raw.SampleCount(), raw.Info().SampleRate)
	// Output:
	// channels=4 samples=500 rate=250
}

func ExampleGenerator_Epochs() {
	g := synth.New()
	epochs, _ := g.Epochs(3, 2, 100)
	fmt.Printf("epochs=%d channels=%d samples=%d\n",
		epochs.EpochCount(), epochs.ChannelCount(), epochs.SampleCount())
	// Output:
	// epochs=3 channels=2 samples=100
}
