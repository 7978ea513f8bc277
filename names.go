package mapproj

import (
	"golang.org/x/text/language"
)

var nameLanguages = []language.Tag{
	language.English,
	language.French,
	language.German,
	language.Spanish,
}

var nameMatcher = language.NewMatcher(nameLanguages)

// localizedNames holds one display name per entry of nameLanguages.
type localizedNames [4]string

func (n localizedNames) english() string {
	return n[0]
}

func (n localizedNames) lookup(tag language.Tag) string {
	_, i, _ := nameMatcher.Match(tag)
	if n[i] == "" {
		return n[0]
	}
	return n[i]
}

// Name returns the display name of the projection in the language closest
// to tag, falling back to English.
func (p *Projection) Name(tag language.Tag) string {
	return p.provider.names.lookup(tag)
}

var (
	namesMercator = localizedNames{
		"Mercator",
		"Mercator",
		"Mercator",
		"Mercator",
	}
	namesTransverseMercator = localizedNames{
		"Transverse Mercator",
		"Mercator transverse",
		"Transversale Mercatorprojektion",
		"Mercator transversa",
	}
	namesExtendedTransverseMercator = localizedNames{
		"Extended Transverse Mercator",
		"Mercator transverse étendue",
		"Erweiterte transversale Mercatorprojektion",
		"Mercator transversa extendida",
	}
	namesLambert = localizedNames{
		"Lambert Conformal Conic",
		"Conique conforme de Lambert",
		"Winkeltreue Kegelprojektion nach Lambert",
		"Cónica conforme de Lambert",
	}
	namesAlbers = localizedNames{
		"Albers Equal Area",
		"Conique équivalente d'Albers",
		"Flächentreue Kegelprojektion nach Albers",
		"Cónica equivalente de Albers",
	}
	namesStereographic = localizedNames{
		"Stereographic",
		"Stéréographique",
		"Stereografische Projektion",
		"Estereográfica",
	}
	namesPolarStereographic = localizedNames{
		"Polar Stereographic",
		"Stéréographique polaire",
		"Polare stereografische Projektion",
		"Estereográfica polar",
	}
	namesObliqueStereographic = localizedNames{
		"Oblique Stereographic",
		"Stéréographique oblique",
		"Schiefachsige stereografische Projektion",
		"Estereográfica oblicua",
	}
	namesOrthographic = localizedNames{
		"Orthographic",
		"Orthographique",
		"Orthografische Projektion",
		"Ortográfica",
	}
)
