package questionbank

import (
	"bytes"
	_ "embed"
	"math/rand/v2"
)

//go:embed questions.json
var defaultCorpus []byte

// LoadDefault builds a Bank from the embedded question corpus.
func LoadDefault(rng *rand.Rand) (*Bank, error) {
	return Load(bytes.NewReader(defaultCorpus), rng)
}
