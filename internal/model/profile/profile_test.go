package profile

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{"valid", Profile{Name: "Alex", FavoriteThing: "skateboarding"}, nil},
		{"missing name", Profile{FavoriteThing: "pizza"}, ErrNameRequired},
		{"missing favorite thing", Profile{Name: "Sam"}, ErrFavoriteThingRequired},
		{"empty", Profile{}, ErrNameRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
