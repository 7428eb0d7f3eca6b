package weather

// CategorizeTemperature maps a temperature in Celsius to its discrete label.
// Brackets are closed on the upper bound: exactly 15 is Cold, exactly 25 is
// Pleasant. The mapping is total over the real line.
func CategorizeTemperature(t float64) TemperatureCategory {
	switch {
	case t <= 15:
		return TemperatureCold
	case t <= 25:
		return TemperaturePleasant
	default:
		return TemperatureHot
	}
}

// CategorizeHumidity maps a relative humidity percentage to its discrete label.
// Exactly 30 is Low, exactly 60 is Normal.
func CategorizeHumidity(h float64) HumidityCategory {
	switch {
	case h <= 30:
		return HumidityLow
	case h <= 60:
		return HumidityNormal
	default:
		return HumidityHigh
	}
}

// Process derives a ProcessedRecord from a raw observation: the two category
// labels plus the processing timestamp and pipeline version tag.
func Process(obs RawObservation, processedAt, version string) ProcessedRecord {
	return ProcessedRecord{
		City:                obs.City,
		Temperature:         obs.Temperature,
		FeelsLike:           obs.FeelsLike,
		Humidity:            obs.Humidity,
		Pressure:            obs.Pressure,
		Weather:             obs.Weather,
		WindSpeed:           obs.WindSpeed,
		Clouds:              obs.Clouds,
		Timestamp:           obs.Timestamp,
		Date:                obs.Date,
		TemperatureCategory: string(CategorizeTemperature(obs.Temperature)),
		HumidityCategory:    string(CategorizeHumidity(obs.Humidity)),
		ProcessedAt:         processedAt,
		PipelineVersion:     version,
	}
}
