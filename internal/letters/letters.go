// internal/letters/letters.go
//
// Per-language letter distributions, loaded once from the embedded
// YAML file. A distribution describes the full tile set for a
// language: per-letter counts, point values and the number of blanks.

package letters

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed distributions.yaml
var distributionsYAML []byte

// LetterSpec is one letter's entry in a distribution.
type LetterSpec struct {
	Count int `yaml:"count"`
	Score int `yaml:"score"`
}

// Distribution is the complete tile set for one language.
type Distribution struct {
	Language string
	Blanks   int
	Letters  map[string]LetterSpec
}

// TotalTiles is the tile count of the full set, blanks included.
func (d *Distribution) TotalTiles() int {
	n := d.Blanks
	for _, spec := range d.Letters {
		n += spec.Count
	}
	return n
}

// LegalLetters lists the letters of the distribution in sorted order.
func (d *Distribution) LegalLetters() []string {
	out := make([]string, 0, len(d.Letters))
	for l := range d.Letters {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

var distributions = mustLoadDistributions()

type rawDistribution struct {
	Blanks  int                   `yaml:"blanks"`
	Letters map[string]LetterSpec `yaml:"letters"`
}

func mustLoadDistributions() map[string]*Distribution {
	var raw map[string]rawDistribution
	if err := yaml.Unmarshal(distributionsYAML, &raw); err != nil {
		panic(fmt.Sprintf("letters: bad embedded distribution data: %v", err))
	}
	out := make(map[string]*Distribution, len(raw))
	for lang, rd := range raw {
		out[lang] = &Distribution{
			Language: lang,
			Blanks:   rd.Blanks,
			Letters:  rd.Letters,
		}
	}
	return out
}

// DistributionFor resolves a language name, case-insensitively.
func DistributionFor(language string) (*Distribution, error) {
	d, ok := distributions[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("no letter distribution for language %q", language)
	}
	return d, nil
}

// Languages lists the supported language names in sorted order.
func Languages() []string {
	out := make([]string, 0, len(distributions))
	for lang := range distributions {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
