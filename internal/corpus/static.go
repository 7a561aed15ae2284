package corpus

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/startforge/blueprint/internal/index"
)

//go:embed seed/*.json
var seedFS embed.FS

var seedFiles = map[index.DocType]string{
	index.TypeScheme:  "seed/schemes.json",
	index.TypeLegal:   "seed/legal.json",
	index.TypeFunding: "seed/funding.json",
	index.TypeMarket:  "seed/market.json",
}

// StaticSource serves the embedded seed corpus: government schemes, legal
// structures, funding sources and a market snapshot. Always available, no
// network.
type StaticSource struct{}

// NewStaticSource creates the embedded seed source.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// LoadAll parses every embedded seed file into records by category.
func (s *StaticSource) LoadAll(ctx context.Context) (map[index.DocType][]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := make(map[index.DocType][]Record, len(seedFiles))
	for typ, path := range seedFiles {
		raw, err := seedFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", path, err)
		}
		data[typ] = records
	}
	return data, nil
}
