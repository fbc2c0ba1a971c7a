package model

// SummaryResponse mirrors GenreSummary for the JSON API. Mean and Variance
// travel as strings because encoding/json cannot represent NaN.
type SummaryResponse struct {
	Genre    string `json:"genre"`
	Mean     string `json:"mean_surprise"`
	Variance string `json:"variance"`
	Count    int    `json:"n_transitions"`
	GapCount int    `json:"n_model_gaps"`
}

// CurvePoint is one transition of an example file's surprise series.
type CurvePoint struct {
	Index int     `json:"index"`
	Pitch Pitch   `json:"pitch"`
	Bits  float64 `json:"surprise_bits"`
	Gap   bool    `json:"model_gap"`
}

// CurveResponse is the representative surprise curve for one genre.
type CurveResponse struct {
	Genre  string       `json:"genre"`
	File   string       `json:"file"`
	Points []CurvePoint `json:"points"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
