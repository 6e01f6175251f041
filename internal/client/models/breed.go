// Package models defines the catalog and user domain types shared by the
// client components. Instances are produced by the API layer's transforms
// and treated as immutable, except that a Breed's Images list may be
// attached in place once fetched.
package models

import "strings"

// Weight is a breed's average weight range, e.g. {"7 - 10", "3 - 5"}.
type Weight struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

// Breed is a single catalog entity.
type Breed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	// Temperament is a ", "-delimited trait string.
	Temperament string `json:"temperament"`
	LifeSpan    string `json:"life_span"`
	Weight      Weight `json:"weight"`

	// Trait scores, 0 (unknown) to 5.
	Adaptability     int `json:"adaptability"`
	AffectionLevel   int `json:"affection_level"`
	ChildFriendly    int `json:"child_friendly"`
	DogFriendly      int `json:"dog_friendly"`
	EnergyLevel      int `json:"energy_level"`
	Grooming         int `json:"grooming"`
	HealthIssues     int `json:"health_issues"`
	Intelligence     int `json:"intelligence"`
	SheddingLevel    int `json:"shedding_level"`
	SocialNeeds      int `json:"social_needs"`
	StrangerFriendly int `json:"stranger_friendly"`
	Vocalisation     int `json:"vocalisation"`

	ReferenceImageID string `json:"reference_image_id,omitempty"`

	// Image is the embedded primary image, when the API ships one inline.
	Image *BreedImage `json:"image,omitempty"`

	// Images is attached after a separate image fetch; nil until then.
	Images []BreedImage `json:"images,omitempty"`
}

// TemperamentTraits splits the delimited temperament string into
// individual traits.
func (b Breed) TemperamentTraits() []string {
	if b.Temperament == "" {
		return nil
	}
	return strings.Split(b.Temperament, ", ")
}

// WeightKg returns the metric weight range, or "N/A" when unknown.
func (b Breed) WeightKg() string {
	if b.Weight.Metric == "" {
		return "N/A"
	}
	return b.Weight.Metric
}

// BreedRef is a reduced back-reference from an image to its breed.
type BreedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BreedImage is a single media item. Images are cached under the id of the
// breed they were requested for, not under their own id.
type BreedImage struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Breeds []BreedRef `json:"breeds,omitempty"`
}

// SortOrder selects result ordering for searches.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// SearchRequest carries search/filter parameters. Zero values mean
// "not set"; it is transient per invocation and never persisted.
type SearchRequest struct {
	Query string
	Limit int
	Page  int
	Order SortOrder
}
