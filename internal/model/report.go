package model

import "time"

// Report represents the complete analysis result for one specimen.
// Scalar properties are serialized to the JSON report; the retained series
// are carried for the CSV and figure writers and stay out of the JSON.
type Report struct {
	Specimen   string    `json:"specimen"`    // material/specimen name (e.g. "CuSn12")
	SourceFile string    `json:"source_file"` // instrument file that was analyzed
	AnalyzedAt time.Time `json:"analyzed_at"` // when the analysis ran
	Geometry   Geometry  `json:"geometry"`    // original specimen geometry
	Samples    int       `json:"samples"`     // retained samples after post-failure filtering

	Properties Properties `json:"properties"`

	Engineering EngineeringSeries `json:"-"`
	True        TrueSeries        `json:"-"`
}

// Properties are the derived scalar material properties.
type Properties struct {
	YoungsModulus float64 `json:"youngs_modulus_mpa"` // E, slope of the elastic region
	OffsetStrain  float64 `json:"offset_strain"`      // offset of the yield construction line
	YieldStress   float64 `json:"yield_stress_mpa"`   // σy at the offset
	YieldStrain   float64 `json:"yield_strain"`
	YieldIndex    int     `json:"yield_index"` // nearest series index, used for the resilience bound

	UTS       float64 `json:"uts_mpa"` // ultimate tensile strength
	UTSStrain float64 `json:"uts_strain"`
	UTSIndex  int     `json:"uts_index"`

	FractureStrain float64 `json:"fracture_strain"` // strain at the last retained sample

	PowerLawA float64 `json:"power_law_a_mpa"` // σt = A·εt^n
	PowerLawN float64 `json:"power_law_n"`

	Resilience float64 `json:"resilience_mj_per_m3"` // strain energy to yield (MPa ≡ MJ/m³)
	Toughness  float64 `json:"toughness_mj_per_m3"`  // strain energy to fracture
}
