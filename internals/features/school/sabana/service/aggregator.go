package service

import (
	"math"

	model "sabana_backend/internals/features/school/sabana/model"
)

// Situación values on report cards
const (
	SituacionPendiente = ""
	SituacionAprobado  = "A"
	SituacionReprobado = "R"
)

// Passing mark for every formato
const NotaMinima = 70.0

// The five fixed MINERD competency codes a general subject is graded from.
var CompetencyCodes = []string{"CCOM", "CPLC", "CRP", "CCT", "CEC"}

func IsCompetencyCode(code string) bool {
	for _, c := range CompetencyCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Entered: scores ≤ 0 are "not captured", never a zero grade.
func Entered(v float64) bool { return v > 0 }

func redondear(v float64) float64 { return math.Round(v) }

// PeriodScore applies the max rule: a remediation attempt replaces the
// regular score, it never stacks; an unset side does not count as an attempt.
func PeriodScore(regular, remediation float64) float64 {
	score := 0.0
	if Entered(regular) {
		score = regular
	}
	if Entered(remediation) && remediation > score {
		score = remediation
	}
	return score
}

// Situacion: pending while there is no grade, pass at NotaMinima.
func Situacion(nota float64) string {
	switch {
	case !Entered(nota):
		return SituacionPendiente
	case nota >= NotaMinima:
		return SituacionAprobado
	default:
		return SituacionReprobado
	}
}

// SubjectComputation holds every derived value for one student × subject
// cell. Nothing here is persisted — it is recomputed on every read from the
// raw entered scores.
type SubjectComputation struct {
	Periods []float64 // effective score per period, index 0 = P1

	CF float64 // calificación final; 0 while any period is missing

	// Completiva (DR): 50% of CF + 50% of the makeup exam
	CpcBase float64
	CC      float64

	// Extraordinaria (DR): 30% of CF + 70% of the makeup exam
	CpexBase float64
	CEx      float64

	Final     float64 // promoted grade as derived: CEx, else CC, else CF
	Situacion string
}

// ComputeSubject derives the full cell for one subject.
//
// When competency rows exist, each period score is the mean of the
// competencies' period maxima restricted to competencies with a non-zero
// entry for that period (missing competencies leave the denominator, they
// are not zeros).
func ComputeSubject(g *model.GeneralGradeModel, comps []model.CompetencyGradeModel, f Formato) SubjectComputation {
	n := f.Periods()
	out := SubjectComputation{Periods: make([]float64, n)}

	for i := 0; i < n; i++ {
		if len(comps) > 0 {
			out.Periods[i] = competencyPeriodMean(comps, i)
		} else if g != nil {
			out.Periods[i] = PeriodScore(generalPeriod(g, i))
		}
	}

	// CF only once every period of the formato has a grade
	complete := true
	sum := 0.0
	for _, p := range out.Periods {
		if !Entered(p) {
			complete = false
			break
		}
		sum += p
	}
	if complete {
		out.CF = redondear(sum / float64(n))
	}

	if f.Completiva() && g != nil {
		computeMakeupChain(&out, g.GeneralGradeCpcNota, g.GeneralGradeCpexNota)
	}

	out.Final = out.CF
	if Entered(out.CC) {
		out.Final = out.CC
	}
	if Entered(out.CEx) {
		out.Final = out.CEx
	}
	out.Situacion = Situacion(out.Final)
	return out
}

// computeMakeupChain fills the completiva/extraordinaria values (DR only).
// Completiva triggers on a failing CF; extraordinaria on a failing completiva.
// Totals exist only once the teacher entered the makeup exam score.
func computeMakeupChain(out *SubjectComputation, cpcNota, cpexNota float64) {
	if !Entered(out.CF) || out.CF >= NotaMinima {
		return
	}
	out.CpcBase = redondear(out.CF * 0.5)
	if Entered(cpcNota) {
		out.CC = redondear(out.CF*0.5 + cpcNota*0.5)
	}

	if !Entered(out.CC) || out.CC >= NotaMinima {
		return
	}
	out.CpexBase = redondear(out.CF * 0.3)
	if Entered(cpexNota) {
		out.CEx = redondear(out.CF*0.3 + cpexNota*0.7)
	}
}

func generalPeriod(g *model.GeneralGradeModel, idx int) (regular, remediation float64) {
	switch idx {
	case 0:
		return g.GeneralGradeP1, g.GeneralGradeRP1
	case 1:
		return g.GeneralGradeP2, g.GeneralGradeRP2
	case 2:
		return g.GeneralGradeP3, g.GeneralGradeRP3
	default:
		return g.GeneralGradeP4, g.GeneralGradeRP4
	}
}

func competencyPeriod(cg *model.CompetencyGradeModel, idx int) (regular, remediation float64) {
	switch idx {
	case 0:
		return cg.CompetencyGradeP1, cg.CompetencyGradeRP1
	case 1:
		return cg.CompetencyGradeP2, cg.CompetencyGradeRP2
	case 2:
		return cg.CompetencyGradeP3, cg.CompetencyGradeRP3
	default:
		return cg.CompetencyGradeP4, cg.CompetencyGradeRP4
	}
}

// competencyPeriodMean: mean over competencies with a non-zero entry for the
// period. All-zero sets yield 0, never NaN.
func competencyPeriodMean(comps []model.CompetencyGradeModel, idx int) float64 {
	sum, count := 0.0, 0
	for i := range comps {
		score := PeriodScore(competencyPeriod(&comps[i], idx))
		if Entered(score) {
			sum += score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// CompetencyPeriods returns the effective per-period scores of one
// competency row (for sheet display).
func CompetencyPeriods(cg *model.CompetencyGradeModel, f Formato) []float64 {
	out := make([]float64, f.Periods())
	for i := range out {
		out[i] = PeriodScore(competencyPeriod(cg, i))
	}
	return out
}
