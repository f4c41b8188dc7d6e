package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	domsvc "PricePulse/internal/domain/service"
)

// JSONCategoryEncoder maps category names to the integer codes the regression
// model was trained with. The mapping is loaded from a JSON artifact once at
// startup and is immutable afterwards.
type JSONCategoryEncoder struct {
	codes       map[string]int
	categories  []string
	defaultCode int
}

type encoderArtifact struct {
	Categories  map[string]int `json:"categories"`
	DefaultCode int            `json:"default_code"`
}

// LoadCategoryEncoder reads the encoder artifact from path. A missing or
// malformed artifact is a startup failure.
func LoadCategoryEncoder(path string) (*JSONCategoryEncoder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encoder artifact %s: %w", path, err)
	}
	var art encoderArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("parse encoder artifact %s: %w", path, err)
	}
	if len(art.Categories) == 0 {
		return nil, fmt.Errorf("encoder artifact %s: no categories", path)
	}
	codes := make(map[string]int, len(art.Categories))
	categories := make([]string, 0, len(art.Categories))
	for name, code := range art.Categories {
		codes[strings.ToLower(name)] = code
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return &JSONCategoryEncoder{
		codes:       codes,
		categories:  categories,
		defaultCode: art.DefaultCode,
	}, nil
}

func (e *JSONCategoryEncoder) Encode(category string) int {
	if code, ok := e.codes[strings.ToLower(category)]; ok {
		return code
	}
	return e.defaultCode
}

// Categories returns the known category names sorted alphabetically.
func (e *JSONCategoryEncoder) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

var _ domsvc.CategoryEncoder = (*JSONCategoryEncoder)(nil)
