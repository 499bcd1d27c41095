package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
)

//go:embed funds.yaml
var defaultCatalog []byte

// StaticStore справочник в памяти, загруженный из YAML
type StaticStore struct {
	funds []FundRecord
}

// NewStaticStore разбирает YAML-справочник и нормализует записи
func NewStaticStore(data []byte) (*StaticStore, error) {
	var doc struct {
		Funds []rawFund `yaml:"funds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fund catalog: %w", err)
	}

	funds := make([]FundRecord, 0, len(doc.Funds))
	for i, raw := range doc.Funds {
		if raw.Name == "" {
			return nil, fmt.Errorf("fund catalog entry %d has no name", i)
		}
		funds = append(funds, raw.normalize())
	}
	return &StaticStore{funds: funds}, nil
}

// DefaultStore возвращает встроенный справочник паевых и золотых фондов
func DefaultStore() (*StaticStore, error) {
	return NewStaticStore(defaultCatalog)
}

func (s *StaticStore) List(ctx context.Context) ([]FundRecord, error) {
	out := make([]FundRecord, len(s.funds))
	copy(out, s.funds)
	return out, nil
}

func (s *StaticStore) ListByRisk(ctx context.Context, level allocation.RiskLevel) ([]FundRecord, error) {
	return Filter(s.funds, ByRisk(level)), nil
}
