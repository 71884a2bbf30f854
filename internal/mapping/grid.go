package mapping

import (
	"fmt"
	"strings"

	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// ImpactLevel is the CNSSI-1253 severity scale assigned to a security objective.
type ImpactLevel string

const (
	LevelLow      ImpactLevel = "low"
	LevelModerate ImpactLevel = "moderate"
	LevelHigh     ImpactLevel = "high"
)

// SecurityObjective is one of the three CNSSI-1253 objectives.
type SecurityObjective string

const (
	ObjectiveConfidentiality SecurityObjective = "confidentiality"
	ObjectiveIntegrity       SecurityObjective = "integrity"
	ObjectiveAvailability    SecurityObjective = "availability"
)

// Levels returns every impact level, lowest first.
func Levels() []ImpactLevel {
	return []ImpactLevel{LevelLow, LevelModerate, LevelHigh}
}

// Objectives returns every security objective.
func Objectives() []SecurityObjective {
	return []SecurityObjective{ObjectiveConfidentiality, ObjectiveIntegrity, ObjectiveAvailability}
}

// Cell is one slot of the objective x level grid. Each cell corresponds to
// exactly one mapping file and produces one intermediate baseline.
type Cell struct {
	Objective SecurityObjective
	Level     ImpactLevel
}

// Name returns the canonical cell name, e.g. "confidentiality_high".
func (c Cell) Name() string {
	return fmt.Sprintf("%s_%s", c.Objective, c.Level)
}

// FileName returns the mapping file name for the cell under the mapping root.
func (c Cell) FileName() string {
	return c.Name() + ".csv"
}

// Grid enumerates all nine objective x level cells, grouped by level.
func Grid() []Cell {
	cells := make([]Cell, 0, 9)
	for _, level := range Levels() {
		for _, objective := range Objectives() {
			cells = append(cells, Cell{Objective: objective, Level: level})
		}
	}
	return cells
}

// LevelFromName infers an impact level from a substring of name. A name
// carrying no level keyword is an error rather than a silent default: the
// upstream tool fell back to the lowest level in that case, which masks
// misnamed inputs.
func LevelFromName(name string) (ImpactLevel, error) {
	lowered := strings.ToLower(name)
	for _, level := range []ImpactLevel{LevelHigh, LevelModerate, LevelLow} {
		if strings.Contains(lowered, string(level)) {
			return level, nil
		}
	}
	return "", errors.NewInvalidConfiguration("no impact-level keyword in %q", name)
}
