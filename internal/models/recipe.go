package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Placeholders used when the server omits display fields
const (
	PlaceholderSummary   = "No description available."
	PlaceholderImage     = "/placeholder.png"
	PlaceholderSourceURL = "#"
)

// RecipeID is a recipe identifier. The server sends it either as a number
// (search results) or as a string (saved favorites), so both are accepted.
type RecipeID string

// UnmarshalJSON accepts a JSON string, number or null
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecipeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RecipeID(n.String())
	return nil
}

// MarshalJSON writes canonical integers as JSON numbers and anything else
// as a string. A Recipe decoded from the server re-emits the form it was
// sent in instead; see Recipe.MarshalJSON.
func (id RecipeID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.canonicalInt() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// canonicalInt reports whether the id is an integer written the way JSON
// writes one: no sign prefix, no leading zeros.
func (id RecipeID) canonicalInt() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// String returns the id as text
func (id RecipeID) String() string {
	return string(id)
}

// Ingredients is a list of ingredient names. Entries may arrive as plain
// strings or as objects with a name/original field.
type Ingredients []string

// UnmarshalJSON accepts an array of strings or ingredient objects
func (in *Ingredients) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Ingredients, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		for _, field := range []string{"original", "name", "title"} {
			if v, ok := obj[field].(string); ok && v != "" {
				out = append(out, v)
				break
			}
		}
	}

	*in = out
	return nil
}

// Recipe is a recipe as served by the API
type Recipe struct {
	ID            RecipeID    `json:"id,omitempty"`
	FavoriteID    string      `json:"_id,omitempty"`
	Title         string      `json:"title"`
	Summary       string      `json:"summary,omitempty"`
	Ingredients   Ingredients `json:"ingredients,omitempty"`
	Image         string      `json:"image,omitempty"`
	SourceURL     string      `json:"sourceUrl,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`

	// idQuoted is set when the server sent id as a JSON string
	idQuoted bool
}

// recipeFields has Recipe's fields without its JSON methods
type recipeFields Recipe

// UnmarshalJSON decodes a recipe and remembers whether its id was quoted
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields recipeFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var wire struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = Recipe(fields)
	raw := bytes.TrimSpace(wire.ID)
	r.idQuoted = len(raw) > 0 && raw[0] == '"'
	return nil
}

// MarshalJSON encodes the recipe with its id in the form it was received.
// Recipes built in code fall back to RecipeID.MarshalJSON.
func (r Recipe) MarshalJSON() ([]byte, error) {
	out := struct {
		recipeFields
		ID json.RawMessage `json:"id,omitempty"`
	}{recipeFields: recipeFields(r)}

	var err error
	switch {
	case r.ID == "":
	case r.idQuoted:
		out.ID, err = json.Marshal(string(r.ID))
	default:
		out.ID, err = r.ID.MarshalJSON()
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// Key returns the identifier used for rate and review calls. Saved
// favorites are addressed by their server-assigned id.
func (r Recipe) Key() string {
	if r.FavoriteID != "" {
		return r.FavoriteID
	}
	return r.ID.String()
}

// Rating returns the average rating or 0 when none was supplied
func (r Recipe) Rating() float64 {
	if r.AverageRating == nil {
		return 0
	}
	return *r.AverageRating
}

// WithDefaults returns a copy with missing display fields set to placeholders
func (r Recipe) WithDefaults() Recipe {
	if strings.TrimSpace(r.Summary) == "" {
		r.Summary = PlaceholderSummary
	}
	if r.Image == "" {
		r.Image = PlaceholderImage
	}
	if r.SourceURL == "" {
		r.SourceURL = PlaceholderSourceURL
	}
	if r.Ingredients == nil {
		r.Ingredients = Ingredients{}
	}
	if r.AverageRating == nil {
		zero := 0.0
		r.AverageRating = &zero
	}
	return r
}

// SameRecipe reports whether a and b refer to the same recipe. Ids are
// compared when both sides carry one; titles are only a fallback.
func SameRecipe(a, b Recipe) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	if a.FavoriteID != "" && b.FavoriteID != "" {
		return a.FavoriteID == b.FavoriteID
	}
	return a.Title != "" && a.Title == b.Title
}

// RatingResult is the server's answer to a rating submission
type RatingResult struct {
	AverageRating *float64 `json:"averageRating,omitempty"`
}
