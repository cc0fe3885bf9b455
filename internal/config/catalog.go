package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the seed content for categories, quizzes and questions.
type Catalog struct {
	Categories []CatalogCategory `yaml:"categories"`
}

type CatalogCategory struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Image       string        `yaml:"image"`
	Quizzes     []CatalogQuiz `yaml:"quizzes"`
}

type CatalogQuiz struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Image       string            `yaml:"image"`
	Questions   []CatalogQuestion `yaml:"questions"`
}

type CatalogQuestion struct {
	Text       string          `yaml:"text"`
	Difficulty string          `yaml:"difficulty"`
	Options    []CatalogOption `yaml:"options"`
}

type CatalogOption struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// LoadCatalog reads a seed catalog; an empty path selects the built-in one.
func LoadCatalog(path string) (Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Catalog{}, fmt.Errorf("config: read catalog %s: %w", path, err)
		}
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("config: parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks that names are present and every question has exactly
// one correct option.
func (c Catalog) Validate() error {
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("config: catalog category without name")
		}
		for _, q := range cat.Quizzes {
			if q.Title == "" {
				return fmt.Errorf("config: category %q has a quiz without title", cat.Name)
			}
			for i, question := range q.Questions {
				correct := 0
				for _, o := range question.Options {
					if o.Correct {
						correct++
					}
				}
				if correct != 1 {
					return fmt.Errorf("config: quiz %q question %d has %d correct options", q.Title, i+1, correct)
				}
			}
		}
	}
	return nil
}
