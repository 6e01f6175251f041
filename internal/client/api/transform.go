package api

import "github.com/ovasilenko/breedbook/internal/client/models"

// Placeholder values substituted for missing optional fields, kept verbatim
// from the product's Spanish copy.
const (
	defaultDescription = "Descripción no disponible"
	defaultOrigin      = "Origen desconocido"
	defaultTemperament = "Temperamento no especificado"
	defaultLifeSpan    = "N/A"
	defaultWeight      = "N/A"
	defaultImageURL    = "assets/default-cat.jpg"
)

type weightDTO struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

type breedDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Origin      string     `json:"origin"`
	Temperament string     `json:"temperament"`
	LifeSpan    string     `json:"life_span"`
	Weight      *weightDTO `json:"weight"`

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

	ReferenceImageID string    `json:"reference_image_id"`
	Image            *imageDTO `json:"image"`
}

type imageDTO struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Breeds []breedDTO `json:"breeds"`
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// toBreed fills documented defaults for missing optional fields. Numeric
// scores already default to 0 through JSON decoding.
func toBreed(d breedDTO) models.Breed {
	b := models.Breed{
		ID:          d.ID,
		Name:        d.Name,
		Description: orDefault(d.Description, defaultDescription),
		Origin:      orDefault(d.Origin, defaultOrigin),
		Temperament: orDefault(d.Temperament, defaultTemperament),
		LifeSpan:    orDefault(d.LifeSpan, defaultLifeSpan),
		Weight:      models.Weight{Imperial: defaultWeight, Metric: defaultWeight},

		Adaptability:     d.Adaptability,
		AffectionLevel:   d.AffectionLevel,
		ChildFriendly:    d.ChildFriendly,
		DogFriendly:      d.DogFriendly,
		EnergyLevel:      d.EnergyLevel,
		Grooming:         d.Grooming,
		HealthIssues:     d.HealthIssues,
		Intelligence:     d.Intelligence,
		SheddingLevel:    d.SheddingLevel,
		SocialNeeds:      d.SocialNeeds,
		StrangerFriendly: d.StrangerFriendly,
		Vocalisation:     d.Vocalisation,

		ReferenceImageID: d.ReferenceImageID,
	}

	if d.Weight != nil {
		b.Weight = models.Weight{
			Imperial: orDefault(d.Weight.Imperial, defaultWeight),
			Metric:   orDefault(d.Weight.Metric, defaultWeight),
		}
	}

	if d.Image != nil {
		img := toImage(*d.Image)
		// drop the back-references on the embedded primary image
		img.Breeds = nil
		b.Image = &img
	}

	return b
}

func toBreeds(dtos []breedDTO) []models.Breed {
	breeds := make([]models.Breed, len(dtos))
	for i, d := range dtos {
		breeds[i] = toBreed(d)
	}
	return breeds
}

// toImage defaults a missing url to the placeholder asset and reduces the
// breed back-references to the first breed's id/name.
func toImage(d imageDTO) models.BreedImage {
	img := models.BreedImage{
		ID:     d.ID,
		URL:    orDefault(d.URL, defaultImageURL),
		Width:  d.Width,
		Height: d.Height,
	}
	if len(d.Breeds) > 0 {
		img.Breeds = []models.BreedRef{{ID: d.Breeds[0].ID, Name: d.Breeds[0].Name}}
	}
	return img
}

func toImages(dtos []imageDTO) []models.BreedImage {
	images := make([]models.BreedImage, len(dtos))
	for i, d := range dtos {
		images[i] = toImage(d)
	}
	return images
}
