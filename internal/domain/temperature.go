package domain

const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// temperatureUnits lists the temperature scales in display order.
var temperatureUnits = []string{Celsius, Fahrenheit, Kelvin}

type unitPair struct {
	from, to string
}

// temperatureFormulas covers every (from, to) pair over the three scales.
// A pair missing from the table is an unknown unit, never a silent zero.
var temperatureFormulas = map[unitPair]func(float64) float64{
	{Celsius, Celsius}:       identity,
	{Celsius, Fahrenheit}:    func(v float64) float64 { return v*9/5 + 32 },
	{Celsius, Kelvin}:        func(v float64) float64 { return v + 273.15 },
	{Fahrenheit, Celsius}:    func(v float64) float64 { return (v - 32) * 5 / 9 },
	{Fahrenheit, Fahrenheit}: identity,
	{Fahrenheit, Kelvin}:     func(v float64) float64 { return (v-32)*5/9 + 273.15 },
	{Kelvin, Celsius}:        func(v float64) float64 { return v - 273.15 },
	{Kelvin, Fahrenheit}:     func(v float64) float64 { return (v-273.15)*9/5 + 32 },
	{Kelvin, Kelvin}:         identity,
}

func identity(v float64) float64 { return v }

func convertTemperature(value float64, from, to string) (float64, error) {
	if !isTemperatureUnit(from) {
		return 0, &ConversionError{Kind: KindUnknownUnit, Input: from}
	}
	if !isTemperatureUnit(to) {
		return 0, &ConversionError{Kind: KindUnknownUnit, Input: to}
	}
	formula, ok := temperatureFormulas[unitPair{from, to}]
	if !ok {
		return 0, &ConversionError{Kind: KindUnknownUnit, Input: to}
	}
	return formula(value), nil
}

func isTemperatureUnit(unit string) bool {
	for _, u := range temperatureUnits {
		if u == unit {
			return true
		}
	}
	return false
}
