package models

type SeriesConfig struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Colour      string  `json:"colour"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type PageWindow struct {
	Page         int      `json:"page"`
	ItemsPerPage int      `json:"itemsPerPage"`
	TotalPages   int      `json:"totalPages"`
	Visible      []Record `json:"visible"`
}

func (window PageWindow) Paginated() bool {
	return window.TotalPages > 1
}

type PieSlice struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Percent   float64 `json:"percent"`
	Colour    string  `json:"colour"`
	Synthetic bool    `json:"synthetic,omitempty"`
}
