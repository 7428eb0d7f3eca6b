package weather

import "fmt"

// TemperatureCategory is the discrete label derived from a temperature reading.
type TemperatureCategory string

// HumidityCategory is the discrete label derived from a humidity reading.
type HumidityCategory string

const (
	TemperatureCold     TemperatureCategory = "Cold"
	TemperaturePleasant TemperatureCategory = "Pleasant"
	TemperatureHot      TemperatureCategory = "Hot"

	HumidityLow    HumidityCategory = "Low"
	HumidityNormal HumidityCategory = "Normal"
	HumidityHigh   HumidityCategory = "High"
)

// Location represents a place we collect weather for. City must be provided;
// Country narrows the upstream lookup when set. Locations are taken as
// configured: no geocoding, no deduplication.
type Location struct {
	City    string `json:"city" yaml:"city"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Query returns the location in the "city[,country]" form the upstream API expects.
func (l Location) Query() string {
	if l.Country != "" {
		return fmt.Sprintf("%s,%s", l.City, l.Country)
	}
	return l.City
}

// RawObservation is one current-conditions record as fetched for a location on
// a given run date. Immutable once written to the raw staging file.
type RawObservation struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Weather     string  `json:"weather"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      int32   `json:"clouds"`
	Timestamp   string  `json:"timestamp"` // RFC3339, UTC
	Date        string  `json:"date"`      // run date, YYYY-MM-DD
}

// ProcessedRecord is a RawObservation augmented with the derived categorical
// fields and processing metadata. The parquet tags define the schema of the
// processed staging file.
type ProcessedRecord struct {
	City                string  `json:"city" parquet:"name=city,type=BYTE_ARRAY,convertedtype=UTF8"`
	Temperature         float64 `json:"temperature" parquet:"name=temperature,type=DOUBLE"`
	FeelsLike           float64 `json:"feels_like" parquet:"name=feels_like,type=DOUBLE"`
	Humidity            float64 `json:"humidity" parquet:"name=humidity,type=DOUBLE"`
	Pressure            float64 `json:"pressure" parquet:"name=pressure,type=DOUBLE"`
	Weather             string  `json:"weather" parquet:"name=weather,type=BYTE_ARRAY,convertedtype=UTF8"`
	WindSpeed           float64 `json:"wind_speed" parquet:"name=wind_speed,type=DOUBLE"`
	Clouds              int32   `json:"clouds" parquet:"name=clouds,type=INT32"`
	Timestamp           string  `json:"timestamp" parquet:"name=timestamp,type=BYTE_ARRAY,convertedtype=UTF8"`
	Date                string  `json:"date" parquet:"name=date,type=BYTE_ARRAY,convertedtype=UTF8"`
	TemperatureCategory string  `json:"temperature_category" parquet:"name=temperature_category,type=BYTE_ARRAY,convertedtype=UTF8"`
	HumidityCategory    string  `json:"humidity_category" parquet:"name=humidity_category,type=BYTE_ARRAY,convertedtype=UTF8"`
	ProcessedAt         string  `json:"processed_at" parquet:"name=processed_at,type=BYTE_ARRAY,convertedtype=UTF8"`
	PipelineVersion     string  `json:"pipeline_version" parquet:"name=pipeline_version,type=BYTE_ARRAY,convertedtype=UTF8"`
}
