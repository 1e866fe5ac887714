package ecodata

// Record is one row of the sustainability reference dataset, keyed by
// clothing item-type name. Field names mirror the source collection so
// documents round-trip unchanged; the same shape is served over the API
// and snapshotted onto items at upload time.
type Record struct {
	ItemName         string  `bson:"ItemName" json:"ItemName"`
	Category         string  `bson:"Category,omitempty" json:"Category,omitempty"`
	WaterSavedLitres float64 `bson:"WaterSavedLitres" json:"WaterSavedLitres"`
	CO2SavedKg       float64 `bson:"CO2SavedKg" json:"CO2SavedKg"`
	EnergySavedKWh   float64 `bson:"EnergySavedKWh" json:"EnergySavedKWh"`
	LandfillSavedKg  float64 `bson:"LandfillSavedKg" json:"LandfillSavedKg"`
}
