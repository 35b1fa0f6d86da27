package types

// Measurement is one air-quality observation for a commune in a given year.
// Pollutant concentrations are in µg/m³ (SOMO35 in µg/m³.day, AOT40 in
// µg/m³.hour). Optional readings are pointers so an absent value stays NULL
// in the database and null in JSON rather than collapsing to zero.
type Measurement struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Commune     string   `gorm:"size:100;not null;index;index:idx_commune_annee" json:"commune"`
	CodeInsee   string   `gorm:"size:10;not null;index;column:code_insee" json:"code_insee"`
	Region      string   `gorm:"size:100;not null;index;index:idx_region_annee" json:"region"`
	Departement string   `gorm:"size:100;not null" json:"departement"`
	Annee       int      `gorm:"not null;index;index:idx_commune_annee;index:idx_region_annee" json:"annee"`
	No2         *float64 `json:"no2"`
	Pm10        *float64 `json:"pm10"`
	Pm25        *float64 `json:"pm25"`
	O3          *float64 `json:"o3"`
	Somo35      *float64 `json:"somo35"`
	Aot40       *float64 `json:"aot40"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (Measurement) TableName() string {
	return "air_quality"
}

// MeasurementCreate carries the fields accepted when inserting a record.
// The identifier is assigned by the store.
type MeasurementCreate struct {
	Commune     string   `json:"commune"`
	CodeInsee   string   `json:"code_insee"`
	Region      string   `json:"region"`
	Departement string   `json:"departement"`
	Annee       int      `json:"annee"`
	No2         *float64 `json:"no2"`
	Pm10        *float64 `json:"pm10"`
	Pm25        *float64 `json:"pm25"`
	O3          *float64 `json:"o3"`
	Somo35      *float64 `json:"somo35"`
	Aot40       *float64 `json:"aot40"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// MeasurementPatch is an optional-field patch: every field is independently
// absent, null, or a value. Absent fields are left untouched; an explicit
// null clears a nullable reading and is rejected on required fields.
type MeasurementPatch struct {
	Commune     Optional[string]  `json:"commune"`
	CodeInsee   Optional[string]  `json:"code_insee"`
	Region      Optional[string]  `json:"region"`
	Departement Optional[string]  `json:"departement"`
	Annee       Optional[int]     `json:"annee"`
	No2         Optional[float64] `json:"no2"`
	Pm10        Optional[float64] `json:"pm10"`
	Pm25        Optional[float64] `json:"pm25"`
	O3          Optional[float64] `json:"o3"`
	Somo35      Optional[float64] `json:"somo35"`
	Aot40       Optional[float64] `json:"aot40"`
	Latitude    Optional[float64] `json:"latitude"`
	Longitude   Optional[float64] `json:"longitude"`
}

// ListFilter narrows a record listing. Commune and Region are
// case-insensitive substring matches, Annee is an exact match when set.
type ListFilter struct {
	Commune string
	Region  string
	Annee   *int
}

// MeasurementPage is one page of a filtered listing plus the total count of
// matching records across all pages.
type MeasurementPage struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Data     []*Measurement `json:"data"`
}
