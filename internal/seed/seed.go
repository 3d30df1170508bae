package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/evaldesk/evaldesk/internal/model"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed status_options.yaml
var statusOptionsYAML []byte

type statusOptionSeed struct {
	Label    string  `yaml:"label"`
	Color    string  `yaml:"color"`
	Score    float64 `yaml:"score"`
	Position int     `yaml:"position"`
}

type seedFile struct {
	StatusOptions []statusOptionSeed `yaml:"status_options"`
}

// ParseStatusOptions decodes the embedded system status-option catalog.
func ParseStatusOptions() ([]model.StatusOption, error) {
	var file seedFile
	if err := yaml.Unmarshal(statusOptionsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse status option seed: %w", err)
	}
	options := make([]model.StatusOption, 0, len(file.StatusOptions))
	for _, s := range file.StatusOptions {
		options = append(options, model.StatusOption{
			Scope:    model.StatusOptionScopeSystem,
			Label:    s.Label,
			Color:    s.Color,
			Score:    s.Score,
			Position: s.Position,
		})
	}
	return options, nil
}

// StatusOptions upserts the system-scope defaults, keyed by label.
// Organization-scope rows are never touched.
func StatusOptions(db *gorm.DB) error {
	options, err := ParseStatusOptions()
	if err != nil {
		return err
	}
	for _, opt := range options {
		var existing model.StatusOption
		err := db.Where("scope = ? AND label = ?", model.StatusOptionScopeSystem, opt.Label).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&opt).Error; err != nil {
				return fmt.Errorf("seed status option %q: %w", opt.Label, err)
			}
		case err != nil:
			return err
		default:
			existing.Color = opt.Color
			existing.Score = opt.Score
			existing.Position = opt.Position
			if err := db.Save(&existing).Error; err != nil {
				return fmt.Errorf("update status option %q: %w", opt.Label, err)
			}
		}
	}
	return nil
}
