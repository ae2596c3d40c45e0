package service

import (
	"log"
	"strings"
)

// Formato is the country/stage grading ruleset applied to a whole grade level.
// DR formats grade over four periods with the completiva/extraordinaria makeup
// chain; Haiti formats grade over three periods without it.
type Formato string

const (
	FormatoInicialRD     Formato = "inicial_rd"
	FormatoPrimariaRD    Formato = "primaria_rd"
	FormatoSecundariaRD  Formato = "secundaria_rd"
	FormatoPolitecnicoRD Formato = "politecnico_rd"

	FormatoInicialHT     Formato = "inicial_ht"
	FormatoPrimariaHT    Formato = "primaria_ht"
	FormatoSecundariaHT  Formato = "secundaria_ht"
	FormatoPolitecnicoHT Formato = "politecnico_ht"

	// Historical default: levels created before the formato column existed
	// were all secondary sábanas. Only this value gets second-guessed.
	FormatoDefault = FormatoSecundariaRD
)

func (f Formato) Valid() bool {
	switch f {
	case FormatoInicialRD, FormatoPrimariaRD, FormatoSecundariaRD, FormatoPolitecnicoRD,
		FormatoInicialHT, FormatoPrimariaHT, FormatoSecundariaHT, FormatoPolitecnicoHT:
		return true
	}
	return false
}

func (f Formato) Haiti() bool { return strings.HasSuffix(string(f), "_ht") }

// Periods: MINERD grades four periods per cycle, MENFP three (contrôles).
func (f Formato) Periods() int {
	if f.Haiti() {
		return 3
	}
	return 4
}

// Completiva applies only to the DR makeup chain.
func (f Formato) Completiva() bool { return !f.Haiti() }

type stage int

const (
	stageInicial stage = iota
	stagePrimaria
	stageSecundaria
	stagePolitecnico
	stageUnknown
)

var stageKeywords = []struct {
	st    stage
	words []string
}{
	// politecnico before secundaria: "liceo técnico", "polytechnique" etc.
	{stagePolitecnico, []string{"politecnico", "politécnico", "polytechnic", "polytechnique", "vocacional", "tecnico profesional", "técnico profesional"}},
	{stageInicial, []string{"inicial", "initial", "prescolaire", "préscolaire", "maternelle", "kinder", "preprimaria", "pre-primaria"}},
	{stagePrimaria, []string{"primaria", "primary", "fondamental", "basica", "básica"}},
	{stageSecundaria, []string{"secundaria", "secondary", "secondaire", "media", "liceo", "lycee", "lycée"}},
}

func matchStage(text string) stage {
	text = strings.ToLower(text)
	for _, sk := range stageKeywords {
		for _, w := range sk.words {
			if strings.Contains(text, w) {
				return sk.st
			}
		}
	}
	return stageUnknown
}

func formatoFor(st stage, haiti bool) Formato {
	var f Formato
	switch st {
	case stageInicial:
		f = FormatoInicialRD
	case stagePrimaria:
		f = FormatoPrimariaRD
	case stageSecundaria:
		f = FormatoSecundariaRD
	case stagePolitecnico:
		f = FormatoPolitecnicoRD
	default:
		return FormatoDefault
	}
	if haiti {
		f = Formato(strings.TrimSuffix(string(f), "_rd") + "_ht")
	}
	return f
}

// ResolveFormato returns the authoritative formato for a grade level.
//
// A configured value other than the historical default is trusted outright.
// When it equals the default, the level/cycle-group names are keyword-matched
// so legacy levels created before formato configuration don't get silently
// mis-graded; a match logs a warning recommending re-configuration.
func ResolveFormato(configured Formato, levelName, cicloEducativo string, haiti bool) Formato {
	if configured.Valid() && configured != FormatoDefault {
		return configured
	}

	st := matchStage(levelName)
	if st == stageUnknown {
		st = matchStage(cicloEducativo)
	}
	if st != stageUnknown {
		if inferred := formatoFor(st, haiti); inferred != FormatoDefault {
			log.Printf("[WARN] nivel %q usa el formato por defecto; inferido %q por nombre — configure el formato del nivel", levelName, inferred)
			return inferred
		}
	}
	return FormatoDefault
}
