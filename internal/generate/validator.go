package generate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
)

// Validator admits model candidates into the dataset schema.
//
// Admission is strict: the candidate's stats key set must equal the registered
// definitions exactly. A missing key would render as zero and an unregistered
// key would be invisible dead weight, so both reject the candidate.
type Validator struct{}

// NewValidator creates a candidate validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Admit checks a candidate against the registered stat definitions and
// normalizes it in place: the id is lowercased and the generated flag is set.
// Returns an INVALID_CANDIDATE error when the candidate does not conform.
func (v *Validator) Admit(candidate *domain.Entity, kind domain.Kind, defs []domain.StatDefinition) error {
	if candidate == nil {
		return domainerrors.InvalidCandidate("candidate is empty")
	}

	var problems []string

	if strings.TrimSpace(candidate.ID) == "" {
		problems = append(problems, "id is missing")
	}
	if strings.TrimSpace(candidate.Name) == "" {
		problems = append(problems, "name is missing")
	}
	if candidate.Score <= 0 || math.IsNaN(candidate.Score) || math.IsInf(candidate.Score, 0) {
		problems = append(problems, fmt.Sprintf("score %v is not a positive number", candidate.Score))
	}
	if candidate.Rank < 1 {
		problems = append(problems, "rank is missing")
	}
	if !kind.HasExtension(candidate) {
		problems = append(problems, fmt.Sprintf("%s is missing", kind.ExtensionField()))
	}

	problems = append(problems, statProblems(candidate.Stats, defs)...)

	if len(problems) > 0 {
		return domainerrors.InvalidCandidatef("candidate rejected: %s", strings.Join(problems, "; "))
	}

	candidate.ID = strings.ToLower(strings.TrimSpace(candidate.ID))
	candidate.IsGenerated = true
	return nil
}

// statProblems checks the stats map for exact key-set equality with the
// registered definitions and for finite values.
func statProblems(stats map[string]float64, defs []domain.StatDefinition) []string {
	var problems []string

	if stats == nil {
		return []string{"stats object is missing"}
	}

	for _, def := range defs {
		value, ok := stats[def.ID]
		if !ok {
			problems = append(problems, fmt.Sprintf("stat %q is missing", def.ID))
			continue
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			problems = append(problems, fmt.Sprintf("stat %q is not a finite number", def.ID))
		}
	}

	registered := domain.StatIDs(defs)
	var extras []string
	for key := range stats {
		if !slices.Contains(registered, key) {
			extras = append(extras, key)
		}
	}
	if len(extras) > 0 {
		slices.Sort(extras)
		problems = append(problems, fmt.Sprintf("unregistered stats: %s", strings.Join(extras, ", ")))
	}

	return problems
}
