// Package advice evaluates the fixed irrigation advisory cascade over the
// latest reading and a short trailing window of the reading table.
package advice

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

// WindowSize is how many trailing readings feed the trend rules.
const WindowSize = 6

// Advisory texts. Ordering of the cascade is fixed; all applicable rules
// fire. These are domain constants, not user-configurable.
const (
	MsgHumidityLowRainExpected = "Umidade baixa, mas chuva alta prevista. Acompanhe o clima antes de irrigar."
	MsgHumidityLow             = "Umidade abaixo de 45%. Programe irrigação em breve para evitar estresse hídrico."
	MsgHumidityHigh            = "Umidade acima de 65%. Mantenha a irrigação desligada para evitar saturação do solo."
	MsgHumidityInRange         = "Umidade dentro da faixa ideal (45%-65%). Apenas monitore possíveis alterações."
	MsgHumidityFalling         = "Tendência recente de queda na umidade. Planeje irrigação preventiva nas próximas horas."
	MsgHumidityRising          = "Umidade subindo nos últimos registros. Avalie reduzir o tempo de irrigação."
	MsgRainLikely              = "Probabilidade de chuva acima de 60%. Considere adiar a irrigação e validar após a precipitação."
	MsgRainUnlikely            = "Pouca chance de chuva para o período. Ajuste o ciclo para manter o solo úmido."
	MsgHeatStress              = "Temperaturas elevadas com umidade moderada. Prefira irrigar no início da manhã ou fim da tarde."
	MsgIrrigationOn            = "Sistema de irrigação está ligado. Certifique-se de que a vazão atende às metas de umidade."
	MsgIrrigationOff           = "Irrigação desligada no último registro. Reative somente se a umidade cair abaixo da meta."
	MsgPHAcidic                = "pH ácido (<6). Avalie correção com calcário ou irrigação com solução alcalina leve."
	MsgPHAlkaline              = "pH elevado (>6.8). Considere irrigação com água levemente acidificada."
)

// NutrientAbsentMsg builds the replenishment message for one nutrient label.
func NutrientAbsentMsg(label string) string {
	return fmt.Sprintf("%s ausente na última leitura. Planeje reposição nutricional via fertirrigação.", label)
}

// Advise produces the ordered advisory list for the latest reading, using
// the last WindowSize readings of the table for trend rules. The result is a
// pure function of its inputs. A latest reading with no usable field at all
// yields an empty list.
func Advise(latest sensor.Reading, table sensor.Table) []string {
	messages := make([]string, 0, 8)
	if !usable(latest) {
		return messages
	}

	humidity := latest.Humidity
	rainProbability := latest.RainProbability
	avgHumidity := windowMeanHumidity(table.Tail(WindowSize))

	// Rule 1: humidity banding. Boundary values 45 and 65 fall in range.
	if humidity != nil {
		switch {
		case *humidity < 45:
			if rainProbability != nil && *rainProbability >= 60 {
				messages = append(messages, MsgHumidityLowRainExpected)
			} else {
				messages = append(messages, MsgHumidityLow)
			}
		case *humidity > 65:
			messages = append(messages, MsgHumidityHigh)
		default:
			messages = append(messages, MsgHumidityInRange)
		}
	}

	// Rule 2: humidity trend against the trailing window mean.
	if humidity != nil && avgHumidity != nil {
		tendency := *humidity - *avgHumidity
		if tendency < -2 {
			messages = append(messages, MsgHumidityFalling)
		} else if tendency > 2 {
			messages = append(messages, MsgHumidityRising)
		}
	}

	// Rule 3: rain probability, independent of rule 1's wording change.
	if rainProbability != nil {
		if *rainProbability >= 60 {
			messages = append(messages, MsgRainLikely)
		} else if *rainProbability <= 30 {
			messages = append(messages, MsgRainUnlikely)
		}
	}

	// Rule 4: heat stress combo.
	if latest.Temperature != nil && *latest.Temperature >= 28 && humidity != nil && *humidity < 55 {
		messages = append(messages, MsgHeatStress)
	}

	// Rule 5: irrigation status, exactly one message.
	if latest.IrrigationStatus == sensor.StatusOn {
		messages = append(messages, MsgIrrigationOn)
	} else {
		messages = append(messages, MsgIrrigationOff)
	}

	// Rule 6: pH banding, silent inside [6, 6.8].
	if latest.PH != nil {
		if *latest.PH < 6 {
			messages = append(messages, MsgPHAcidic)
		} else if *latest.PH > 6.8 {
			messages = append(messages, MsgPHAlkaline)
		}
	}

	// Rule 7: explicit nutrient absence, in fixed phosphorus, potassium,
	// nitrogen order. Unknown flags stay silent.
	for _, name := range []string{sensor.ColPhosphorus, sensor.ColPotassium, sensor.ColNitrogen} {
		flag := latest.Nutrient(name)
		if flag != nil && *flag == 0 {
			messages = append(messages, NutrientAbsentMsg(sensor.NutrientLabels[name]))
		}
	}

	return messages
}

func usable(r sensor.Reading) bool {
	return r.Humidity != nil ||
		r.PH != nil ||
		r.Temperature != nil ||
		r.RainProbability != nil ||
		r.RainThreshold != nil ||
		r.Nitrogen != nil ||
		r.Phosphorus != nil ||
		r.Potassium != nil ||
		r.IrrigationStatus != ""
}

func windowMeanHumidity(window sensor.Table) *float64 {
	values := make([]float64, 0, len(window))
	for i := range window {
		if window[i].Humidity != nil {
			values = append(values, *window[i].Humidity)
		}
	}
	if len(values) == 0 {
		return nil
	}
	mean := stat.Mean(values, nil)
	return &mean
}
