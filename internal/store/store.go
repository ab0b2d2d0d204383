// Package store loads the classification rule set from YAML, falling back
// to a built-in default set when no file is present.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"

	"gopkg.in/yaml.v3"
)

// RuleStore resolves and loads the categories YAML file.
type RuleStore struct {
	Path   string
	logger logging.Logger
}

// NewRuleStore creates a store for the given rules file path. An empty
// path means "use defaults".
func NewRuleStore(path string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{Path: path, logger: logger}
}

// LoadRules loads the rule set. A missing file is not an error: the
// built-in defaults are returned with a warning, so the tool keeps working
// out of the box.
func (s *RuleStore) LoadRules() (models.RulesConfig, error) {
	filename := s.Path
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.findRulesFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", filename).Warn("Rules file not found, using built-in defaults")
			return DefaultRules(), nil
		}
		return models.RulesConfig{}, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.RulesConfig{}, fmt.Errorf("error reading rules file: %w", err)
	}

	var rules models.RulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return models.RulesConfig{}, fmt.Errorf("error parsing rules file: %w", err)
	}

	if len(rules.Categories) == 0 {
		s.logger.WithField("file", filePath).Warn("Rules file contains no categories, using built-in defaults")
		return DefaultRules(), nil
	}

	if len(rules.RefundKeywords) == 0 {
		rules.RefundKeywords = DefaultRules().RefundKeywords
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "categories", Value: len(rules.Categories)},
	).Debug("Loaded classification rules")

	return rules, nil
}

// findRulesFile checks the path itself and a config/ subdirectory.
func (s *RuleStore) findRulesFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// DefaultRules returns the built-in ordered rule table. Keyword matching
// is case-insensitive substring matching; accented and plain spellings are
// both listed because exports are inconsistent about encoding.
func DefaultRules() models.RulesConfig {
	return models.RulesConfig{
		Categories: []models.CategoryRule{
			{
				Name: models.CategorySalary,
				Kind: models.KindIncome,
				Keywords: []string{
					"nomina", "nómina", "salario", "sueldo", "payroll", "salary",
				},
			},
			{
				Name: models.CategoryRent,
				Kind: models.KindExpense,
				Keywords: []string{
					"alquiler", "hipoteca", "rent", "mortgage",
				},
			},
			{
				Name: models.CategoryGroceries,
				Kind: models.KindExpense,
				Keywords: []string{
					"supermercado", "mercadona", "carrefour", "lidl", "aldi",
					"eroski", "alcampo", "grocery", "supermarket",
				},
			},
			{
				Name: models.CategorySubscriptions,
				Kind: models.KindExpense,
				Keywords: []string{
					"netflix", "spotify", "hbo", "disney", "prime video",
					"suscripcion", "suscripción", "subscription",
				},
			},
			{
				Name: models.CategoryRestaurants,
				Kind: models.KindExpense,
				Keywords: []string{
					"restaurante", "cafeteria", "cafetería", "pizzeria",
					"burger", "kebab", "restaurant",
				},
			},
			{
				Name: models.CategoryTransport,
				Kind: models.KindExpense,
				Keywords: []string{
					"metro", "renfe", "gasolina", "gasolinera", "uber",
					"cabify", "taxi", "autobus", "autobús", "parking",
				},
			},
			{
				Name: models.CategoryUtilities,
				Kind: models.KindExpense,
				Keywords: []string{
					"endesa", "iberdrola", "naturgy", "vodafone", "movistar",
					"orange", "electricidad", "agua", "internet", "telefono",
					"teléfono",
				},
			},
			{
				Name: models.CategoryEntertainment,
				Kind: models.KindExpense,
				Keywords: []string{
					"cine", "teatro", "concierto", "entradas", "steam", "cinema",
				},
			},
			{
				Name: models.CategoryHealth,
				Kind: models.KindExpense,
				Keywords: []string{
					"farmacia", "medico", "médico", "clinica", "clínica",
					"dentista", "gimnasio",
				},
			},
		},
		RefundKeywords: []string{
			"devolucion", "devolución", "reembolso", "refund", "abono de compra",
		},
	}
}
