package profile

import "errors"

var (
	ErrNameRequired          = errors.New("name is required")
	ErrFavoriteThingRequired = errors.New("favorite_thing is required")
)

// Profile captures the onboarding attributes a buddy persona is built from.
// It is copied into the session at creation and never mutated afterwards.
type Profile struct {
	Name              string   `json:"name"`
	FavoriteThing     string   `json:"favorite_thing"`
	Age               *int     `json:"age,omitempty"`
	Hobbies           []string `json:"hobbies,omitempty"`
	Location          string   `json:"location,omitempty"`
	Occupation        string   `json:"occupation,omitempty"`
	PersonalityTraits []string `json:"personality_traits,omitempty"`
	FunFacts          []string `json:"fun_facts,omitempty"`
}

// Validate enforces the required onboarding fields at the boundary.
func (p Profile) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.FavoriteThing == "" {
		return ErrFavoriteThingRequired
	}
	return nil
}
