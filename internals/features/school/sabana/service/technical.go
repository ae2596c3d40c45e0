package service

import (
	model "sabana_backend/internals/features/school/sabana/model"
)

// Vocational learning-outcome codes graded within a technical module.
var OutcomeCodes = []string{"ra1", "ra2", "ra3", "ra4", "ra5", "ra6", "ra7", "ra8", "ra9", "ra10"}

func IsOutcomeCode(code string) bool {
	for _, c := range OutcomeCodes {
		if c == code {
			return true
		}
	}
	return false
}

type OutcomeScore struct {
	Codigo    string
	Original  float64
	Rec1      float64
	Rec2      float64
	Effective float64 // best valid attempt; 0 when none
}

type TechnicalComputation struct {
	Outcomes  []OutcomeScore
	Final     float64
	Situacion string
	Valid     bool // false when no outcome has a valid attempt → not displayed
}

// EffectiveOutcome: best of original + two remediation attempts, counting
// only attempts > 0.
func EffectiveOutcome(original, rec1, rec2 float64) float64 {
	best := 0.0
	for _, v := range []float64{original, rec1, rec2} {
		if Entered(v) && v > best {
			best = v
		}
	}
	return best
}

// ComputeTechnical aggregates a student's outcome rows into the module final
// grade: mean over outcomes with at least one valid attempt, same pass mark
// as general subjects.
func ComputeTechnical(rows []model.TechnicalGradeModel) TechnicalComputation {
	out := TechnicalComputation{Outcomes: make([]OutcomeScore, 0, len(rows))}

	sum, count := 0.0, 0
	for i := range rows {
		r := &rows[i]
		eff := EffectiveOutcome(r.TechnicalGradeOriginal, r.TechnicalGradeRec1, r.TechnicalGradeRec2)
		out.Outcomes = append(out.Outcomes, OutcomeScore{
			Codigo:    r.TechnicalGradeRA,
			Original:  r.TechnicalGradeOriginal,
			Rec1:      r.TechnicalGradeRec1,
			Rec2:      r.TechnicalGradeRec2,
			Effective: eff,
		})
		if Entered(eff) {
			sum += eff
			count++
		}
	}

	if count == 0 {
		return out
	}
	out.Valid = true
	out.Final = redondear(sum / float64(count))
	out.Situacion = Situacion(out.Final)
	return out
}
