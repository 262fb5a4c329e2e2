package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

// fileRecord is the on-disk shape of one chain in a catalog file.
type fileRecord struct {
	Name        string   `yaml:"name"`
	Symbol      string   `yaml:"symbol"`
	Color       string   `yaml:"color"`
	Icon        string   `yaml:"icon"`
	Status      string   `yaml:"status"`
	Deposit     *float64 `yaml:"deposit"`
	Link        string   `yaml:"link"`
	Description string   `yaml:"description"`
}

type fileDocument struct {
	Chains []fileRecord `yaml:"chains"`
}

// LoadFile reads and decodes a YAML catalog file.
//
// Parameters:
//   - path: path of the catalog file
//
// Returns:
//   - []ChainEntity: decoded entities in file order, not yet validated for deposits
//   - error: if the file cannot be read or a record is malformed
func LoadFile(path string) ([]ChainEntity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	entities, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return entities, nil
}

// Decode decodes a YAML catalog document.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - []ChainEntity: decoded entities in document order
//   - error: wraps common.ErrInvalidEntity for malformed records
func Decode(r io.Reader) ([]ChainEntity, error) {
	var doc fileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	out := make([]ChainEntity, 0, len(doc.Chains))
	for i, rec := range doc.Chains {
		e, err := rec.entity(i)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (rec fileRecord) entity(i int) (ChainEntity, error) {
	e := ChainEntity{
		Index:            i,
		Name:             rec.Name,
		Symbol:           rec.Symbol,
		IconRef:          rec.Icon,
		NavigationTarget: rec.Link,
		Description:      rec.Description,
		Color:            colorful.Color{R: 0.8, G: 0.8, B: 0.8},
	}

	if rec.Color != "" {
		c, err := colorful.Hex(rec.Color)
		if err != nil {
			return e, fmt.Errorf("chain %d (%q): color %q: %v: %w", i, rec.Name, rec.Color, err, common.ErrInvalidEntity)
		}
		e.Color = c
	}

	if rec.Status != "" {
		s, err := ParseStatus(rec.Status)
		if err != nil {
			return e, fmt.Errorf("chain %d (%q): %v: %w", i, rec.Name, err, common.ErrInvalidEntity)
		}
		e.Status = s
	}

	if rec.Deposit != nil {
		e.DepositAmount = *rec.Deposit
	}
	return e, nil
}
