package advice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func tableWithHumidities(values ...float64) sensor.Table {
	table := make(sensor.Table, 0, len(values))
	for _, v := range values {
		table = append(table, sensor.Reading{Humidity: f(v)})
	}
	return table
}

func TestAdviseEmptyReading(t *testing.T) {
	messages := Advise(sensor.Reading{}, sensor.Table{})
	require.NotNil(t, messages)
	require.Empty(t, messages)
}

func TestAdviseHumidityBoundaries(t *testing.T) {
	// Exactly 45 and exactly 65 both land in the in-range branch.
	for _, humidity := range []float64{45, 65, 50} {
		latest := sensor.Reading{Humidity: f(humidity)}
		messages := Advise(latest, sensor.Table{latest})
		require.Contains(t, messages, MsgHumidityInRange, "humidity %v", humidity)
		require.NotContains(t, messages, MsgHumidityLow)
		require.NotContains(t, messages, MsgHumidityHigh)
	}

	latest := sensor.Reading{Humidity: f(44.9)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgHumidityLow)

	latest = sensor.Reading{Humidity: f(65.1)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgHumidityHigh)
}

func TestAdvisePHBoundaries(t *testing.T) {
	for _, ph := range []float64{6.0, 6.8, 6.4} {
		latest := sensor.Reading{PH: f(ph)}
		messages := Advise(latest, sensor.Table{latest})
		require.NotContains(t, messages, MsgPHAcidic, "ph %v", ph)
		require.NotContains(t, messages, MsgPHAlkaline, "ph %v", ph)
	}

	latest := sensor.Reading{PH: f(5.9)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgPHAcidic)

	latest = sensor.Reading{PH: f(6.9)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgPHAlkaline)
}

func TestAdviseIrrigationAlwaysOneMessage(t *testing.T) {
	on := sensor.Reading{IrrigationStatus: "ON", IrrigationOn: true}
	messages := Advise(on, sensor.Table{on})
	require.Contains(t, messages, MsgIrrigationOn)
	require.NotContains(t, messages, MsgIrrigationOff)

	off := sensor.Reading{IrrigationStatus: "OFF"}
	messages = Advise(off, sensor.Table{off})
	require.Contains(t, messages, MsgIrrigationOff)
	require.NotContains(t, messages, MsgIrrigationOn)
}

func TestAdviseHeatStressCombo(t *testing.T) {
	latest := sensor.Reading{Temperature: f(28), Humidity: f(54.9)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgHeatStress)

	latest = sensor.Reading{Temperature: f(27.9), Humidity: f(54.9)}
	require.NotContains(t, Advise(latest, sensor.Table{latest}), MsgHeatStress)

	latest = sensor.Reading{Temperature: f(30), Humidity: f(55)}
	require.NotContains(t, Advise(latest, sensor.Table{latest}), MsgHeatStress)

	// Unknown humidity never fires the combo.
	latest = sensor.Reading{Temperature: f(30)}
	require.NotContains(t, Advise(latest, sensor.Table{latest}), MsgHeatStress)
}

func TestAdviseTrendWindow(t *testing.T) {
	// Window mean 46 vs current 40: falling by 6, preventive message.
	table := tableWithHumidities(48, 48, 48, 48, 44, 40)
	latest := table[len(table)-1]
	messages := Advise(latest, table)
	require.Contains(t, messages, MsgHumidityFalling)
	require.NotContains(t, messages, MsgHumidityRising)

	// Within the +-2 dead band: no trend message.
	table = tableWithHumidities(50, 50, 50)
	latest = table[len(table)-1]
	messages = Advise(latest, table)
	require.NotContains(t, messages, MsgHumidityFalling)
	require.NotContains(t, messages, MsgHumidityRising)
}

func TestAdviseScenarioOrdering(t *testing.T) {
	// Six-reading window with mean humidity 46 and a latest reading that
	// trips the rain-aware low-humidity wording, the falling trend, the rain
	// deferral, the off status, the acidity rule and phosphorus absence.
	table := tableWithHumidities(48, 48, 48, 48, 44)
	latest := sensor.Reading{
		Humidity:         f(40),
		RainProbability:  f(70),
		IrrigationStatus: "OFF",
		PH:               f(5.5),
		Phosphorus:       i(0),
	}
	table = append(table, latest)

	messages := Advise(latest, table)
	require.Equal(t, []string{
		MsgHumidityLowRainExpected,
		MsgHumidityFalling,
		MsgRainLikely,
		MsgIrrigationOff,
		MsgPHAcidic,
		NutrientAbsentMsg(sensor.NutrientLabels[sensor.ColPhosphorus]),
	}, messages)
}

func TestAdviseNutrientOrderAndUnknowns(t *testing.T) {
	latest := sensor.Reading{
		Phosphorus: i(0),
		Potassium:  i(0),
		Nitrogen:   i(0),
	}
	messages := Advise(latest, sensor.Table{latest})

	want := []string{
		NutrientAbsentMsg("Fósforo"),
		NutrientAbsentMsg("Potássio"),
		NutrientAbsentMsg("Nitrogênio"),
	}
	require.Equal(t, want, messages[len(messages)-3:])

	// Unknown flags are silent, present flags too.
	latest = sensor.Reading{Phosphorus: i(1)}
	messages = Advise(latest, sensor.Table{latest})
	for _, m := range messages {
		require.NotContains(t, m, "ausente na última leitura")
	}
}

func TestAdviseRainIndependentOfHumiditySuppression(t *testing.T) {
	// Rule 1 only changes wording; rule 3 still fires on the same reading.
	latest := sensor.Reading{Humidity: f(40), RainProbability: f(60)}
	messages := Advise(latest, sensor.Table{latest})
	require.Contains(t, messages, MsgHumidityLowRainExpected)
	require.Contains(t, messages, MsgRainLikely)

	latest = sensor.Reading{RainProbability: f(30)}
	require.Contains(t, Advise(latest, sensor.Table{latest}), MsgRainUnlikely)

	latest = sensor.Reading{RainProbability: f(45)}
	messages = Advise(latest, sensor.Table{latest})
	require.NotContains(t, messages, MsgRainLikely)
	require.NotContains(t, messages, MsgRainUnlikely)
}

func TestAdviseDeterministic(t *testing.T) {
	table := tableWithHumidities(48, 47, 46, 45, 44, 43)
	latest := table[len(table)-1]

	first := Advise(latest, table)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Advise(latest, table))
	}
}
