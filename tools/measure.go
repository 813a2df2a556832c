package tools

import (
	"context"
	"math"
	"strings"
)

type temperatureScale struct {
	toKelvin   func(float64) float64
	fromKelvin func(float64) float64
}

var temperatureScales = map[string]temperatureScale{
	"kelvin": {
		toKelvin:   func(v float64) float64 { return v },
		fromKelvin: func(k float64) float64 { return k },
	},
	"celsius": {
		toKelvin:   func(v float64) float64 { return v + 273.15 },
		fromKelvin: func(k float64) float64 { return k - 273.15 },
	},
	"fahrenheit": {
		toKelvin:   func(v float64) float64 { return (v + 459.67) * 5 / 9 },
		fromKelvin: func(k float64) float64 { return k*9/5 - 459.67 },
	},
	"rankine": {
		toKelvin:   func(v float64) float64 { return v * 5 / 9 },
		fromKelvin: func(k float64) float64 { return k * 9 / 5 },
	},
	"delisle": {
		toKelvin:   func(v float64) float64 { return 373.15 - v*2/3 },
		fromKelvin: func(k float64) float64 { return (373.15 - k) * 3 / 2 },
	},
	"newton": {
		toKelvin:   func(v float64) float64 { return v*100/33 + 273.15 },
		fromKelvin: func(k float64) float64 { return (k - 273.15) * 33 / 100 },
	},
	"reaumur": {
		toKelvin:   func(v float64) float64 { return v*5/4 + 273.15 },
		fromKelvin: func(k float64) float64 { return (k - 273.15) * 4 / 5 },
	},
	"romer": {
		toKelvin:   func(v float64) float64 { return (v-7.5)*40/21 + 273.15 },
		fromKelvin: func(k float64) float64 { return (k-273.15)*21/40 + 7.5 },
	},
}

// convertTemperature converts a value from one scale to every scale.
// Results are rounded to four decimal places.
func convertTemperature(ctx context.Context, args map[string]any) (any, error) {
	value, err := floatArg(args, "value")
	if err != nil {
		return nil, err
	}
	from, err := optionalString(args, "from", "celsius")
	if err != nil {
		return nil, err
	}
	scale, ok := temperatureScales[strings.ToLower(from)]
	if !ok {
		return nil, invalidArg("unknown scale %q", from)
	}

	kelvin := scale.toKelvin(value)
	out := make(map[string]float64, len(temperatureScales))
	for name, s := range temperatureScales {
		out[name] = round4(s.fromKelvin(kelvin))
	}
	return out, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
