package weather

import "testing"

// TestCategorizeTemperature pins the bracket boundaries: brackets are closed
// on their upper bound, so exactly 15 is still Cold and exactly 25 still
// Pleasant.
func TestCategorizeTemperature(t *testing.T) {
	cases := []struct {
		temp float64
		want TemperatureCategory
	}{
		{-40, TemperatureCold},
		{0, TemperatureCold},
		{14.9, TemperatureCold},
		{15, TemperatureCold},
		{15.1, TemperaturePleasant},
		{20, TemperaturePleasant},
		{25, TemperaturePleasant},
		{25.1, TemperatureHot},
		{43.7, TemperatureHot},
	}

	for _, tc := range cases {
		if got := CategorizeTemperature(tc.temp); got != tc.want {
			t.Errorf("CategorizeTemperature(%v) = %q, want %q", tc.temp, got, tc.want)
		}
	}
}

func TestCategorizeHumidity(t *testing.T) {
	cases := []struct {
		humidity float64
		want     HumidityCategory
	}{
		{0, HumidityLow},
		{30, HumidityLow},
		{30.1, HumidityNormal},
		{45, HumidityNormal},
		{60, HumidityNormal},
		{60.1, HumidityHigh},
		{100, HumidityHigh},
	}

	for _, tc := range cases {
		if got := CategorizeHumidity(tc.humidity); got != tc.want {
			t.Errorf("CategorizeHumidity(%v) = %q, want %q", tc.humidity, got, tc.want)
		}
	}
}

func TestProcessDerivesFieldsAndKeepsRawOnes(t *testing.T) {
	obs := RawObservation{
		City:        "Recife",
		Temperature: 28.3,
		FeelsLike:   31.0,
		Humidity:    82,
		Pressure:    1012,
		Weather:     "céu limpo",
		WindSpeed:   4.2,
		Clouds:      10,
		Timestamp:   "2024-03-01T12:00:00Z",
		Date:        "2024-03-01",
	}

	rec := Process(obs, "2024-03-01T12:05:00Z", "1.0")

	if rec.TemperatureCategory != string(TemperatureHot) {
		t.Errorf("temperature category = %q, want Hot", rec.TemperatureCategory)
	}
	if rec.HumidityCategory != string(HumidityHigh) {
		t.Errorf("humidity category = %q, want High", rec.HumidityCategory)
	}
	if rec.ProcessedAt != "2024-03-01T12:05:00Z" || rec.PipelineVersion != "1.0" {
		t.Errorf("metadata not stamped: %+v", rec)
	}
	if rec.City != obs.City || rec.Temperature != obs.Temperature || rec.Weather != obs.Weather ||
		rec.Clouds != obs.Clouds || rec.Timestamp != obs.Timestamp || rec.Date != obs.Date {
		t.Errorf("raw fields not preserved: %+v", rec)
	}
}
