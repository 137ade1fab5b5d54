// Package classify sorts procedure-type labels into category buckets by
// ordered keyword matching.
package classify

import (
	"strings"

	"github.com/ppiankov/reclasifica/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Rule pairs a category with the keywords that select it
type Rule struct {
	Category    model.Category
	Keywords    []string
	Description string // human-readable matching criteria
}

// DefaultRules returns the built-in rules in priority order. A label matching
// keywords of several rules resolves to the earliest one.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: model.CategoryContractingPublic,
			Keywords: []string{
				"CONTRATACIÓN PÚBLICA",
				"CONTRATACIONES PÚBLICAS",
				"TRAMITACIÓN",
				"ATENCIÓN Y RESOLUCIÓN",
				"ADJUDICACIÓN",
				"CONTRATO",
				"LICITACIÓN",
				"ADQUISICIONES",
				"OBRAS PÚBLICAS",
			},
			Description: "CONTRATACIÓN PÚBLICA, DE TRAMITACIÓN, ATENCIÓN Y RESOLUCIÓN PARA LA ADJUDICACIÓN DE UN CONTRATO",
		},
		{
			Category: model.CategoryConcessionGrant,
			Keywords: []string{
				"OTORGAMIENTO",
				"CONCESIONES",
				"LICENCIAS",
				"PERMISOS",
				"AUTORIZACIONES",
				"PRÓRROGAS",
				"CONCESIÓN",
			},
			Description: "OTORGAMIENTO DE CONCESIONES, LICENCIAS, PERMISOS, AUTORIZACIONES Y SUS PRÓRROGAS",
		},
		{
			Category: model.CategoryAssetDisposal,
			Keywords: []string{
				"ENAJENACIÓN",
				"BIENES MUEBLES",
				"VENTA",
				"DISPOSICIÓN",
				"BIENES",
			},
			Description: "ENAJENACIÓN DE BIENES MUEBLES",
		},
		{
			Category: model.CategoryAppraisalRuling,
			Keywords: []string{
				"DICTAMEN VALUATORIO",
				"JUSTIPRECIACIÓN",
				"RENTAS",
				"AVALÚO",
				"AVALÚOS",
				"VALUACIÓN",
				"PERITAJE",
			},
			Description: "EMISIÓN DE DICTAMEN VALUATORIO Y JUSTIPRECIACIÓN DE RENTAS",
		},
	}
}

// UnclassifiedDescription describes the fallback category
const UnclassifiedDescription = "No coincide con ningún patrón conocido"

// Classifier maps a procedure-type label to a category
type Classifier interface {
	Classify(label string) model.Category
}

// KeywordClassifier implements Classifier over an ordered rule list. It holds
// no mutable state and is safe for concurrent use.
type KeywordClassifier struct {
	rules []Rule
}

// NewKeywordClassifier creates a classifier. A nil rule list uses DefaultRules.
func NewKeywordClassifier(rules []Rule) *KeywordClassifier {
	if rules == nil {
		rules = DefaultRules()
	}

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		keywords := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			keywords[j] = Normalize(kw)
		}
		normalized[i] = Rule{Category: r.Category, Keywords: keywords, Description: r.Description}
	}

	return &KeywordClassifier{rules: normalized}
}

// Classify returns the category of the first rule with a keyword contained in
// the label, or CategoryUnclassified
func (c *KeywordClassifier) Classify(label string) model.Category {
	if label == "" {
		return model.CategoryUnclassified
	}

	value := Normalize(label)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(value, kw) {
				return rule.Category
			}
		}
	}

	return model.CategoryUnclassified
}

// Rules returns the normalized rules in priority order
func (c *KeywordClassifier) Rules() []Rule {
	return c.rules
}

// Normalize composes the label to NFC and upper-cases it so that decomposed
// accents match the keyword lists
func Normalize(label string) string {
	return strings.ToUpper(norm.NFC.String(label))
}
