package models

type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CarModel is a model entry scoped to one brand. The model list shown in the
// listing form must be re-fetched whenever the brand changes.
type CarModel struct {
	ID      int    `json:"id"`
	BrandID int    `json:"brand_id"`
	Name    string `json:"name"`
}

type Year struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

type DriveType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
