package i18n

// conditionTextES maps weatherapi.com condition texts to Spanish.
var conditionTextES = map[string]string{
	"Clear":                                     "Despejado",
	"Sunny":                                     "Soleado",
	"Partly cloudy":                             "Parcialmente nublado",
	"Cloudy":                                    "Nublado",
	"Overcast":                                  "Cubierto",
	"Mist":                                      "Neblina",
	"Patchy rain possible":                      "Posible lluvia dispersa",
	"Patchy rain nearby":                        "Lluvia cerca",
	"Patchy snow possible":                      "Posible nieve dispersa",
	"Patchy sleet possible":                     "Posible aguanieve dispersa",
	"Patchy freezing drizzle possible":          "Posible llovizna helada dispersa",
	"Patchy snow nearby":                        "Nieve cerca",
	"Patchy drizzle nearby":                     "Llovizna cerca",
	"Light rain with thunder":                   "Lluvia ligera con truenos",
	"Thunderstorm":                              "Tormenta eléctrica",
	"Heavy thunderstorm":                        "Tormenta eléctrica intensa",
	"Drizzle":                                   "Llovizna",
	"Heavy drizzle":                             "Llovizna intensa",
	"Rain":                                      "Lluvia",
	"Snow":                                      "Nieve",
	"Sleet":                                     "Aguanieve",
	"Thunderstorm with rain":                    "Tormenta eléctrica con lluvia",
	"Thunderstorm with drizzle":                 "Tormenta eléctrica con llovizna",
	"Thunderstorm with hail":                    "Tormenta eléctrica con granizo",
	"Patchy light drizzle":                      "Llovizna ligera dispersa",
	"Moderate drizzle":                          "Llovizna moderada",
	"Moderate rain at times":                    "Lluvia moderada por momentos",
	"Heavy rain at times":                       "Lluvia intensa por momentos",
	"Thundery outbreaks possible":               "Posibles tormentas eléctricas",
	"Blowing snow":                              "Ventisca",
	"Blizzard":                                  "Tormenta de nieve",
	"Fog":                                       "Niebla",
	"Freezing fog":                              "Niebla helada",
	"Light drizzle":                             "Llovizna ligera",
	"Freezing drizzle":                          "Llovizna helada",
	"Heavy freezing drizzle":                    "Llovizna helada intensa",
	"Light rain":                                "Lluvia ligera",
	"Moderate rain":                             "Lluvia moderada",
	"Heavy rain":                                "Lluvia intensa",
	"Light freezing rain":                       "Lluvia helada ligera",
	"Moderate or heavy freezing rain":           "Lluvia helada moderada o intensa",
	"Light sleet":                               "Aguanieve ligera",
	"Moderate or heavy sleet":                   "Aguanieve moderada o intensa",
	"Light snow":                                "Nieve ligera",
	"Moderate snow":                             "Nieve moderada",
	"Heavy snow":                                "Nieve intensa",
	"Ice pellets":                               "Granizo",
	"Light rain shower":                         "Lluvia ligera intermitente",
	"Moderate or heavy rain shower":             "Lluvia moderada o intensa intermitente",
	"Torrential rain shower":                    "Lluvia torrencial",
	"Light sleet showers":                       "Aguanieve ligera intermitente",
	"Moderate or heavy sleet showers":           "Aguanieve moderada o intensa intermitente",
	"Light snow showers":                        "Nevada ligera intermitente",
	"Moderate or heavy snow showers":            "Nevada moderada o intensa intermitente",
	"Light showers of ice pellets":              "Granizo ligero intermitente",
	"Moderate or heavy showers of ice pellets":  "Granizo moderado o intenso intermitente",
	"Patchy light rain with thunder":            "Lluvia ligera dispersa con truenos",
	"Moderate or heavy rain with thunder":       "Lluvia moderada o intensa con truenos",
	"Patchy light snow with thunder":            "Nieve ligera dispersa con truenos",
	"Moderate or heavy snow with thunder":       "Nieve moderada o intensa con truenos",
}

// TranslateCondition localizes an upstream condition text. Unknown texts
// and non-Spanish languages pass through unchanged.
func TranslateCondition(lang, condition string) string {
	if lang != "es" {
		return condition
	}
	if translated, ok := conditionTextES[condition]; ok {
		return translated
	}
	return condition
}
