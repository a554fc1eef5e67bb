package model

// Amenity is one entry of the amenity catalog. Value is the identifier stored
// on listings; Label is the display name.
type Amenity struct {
	ID    string `json:"id" bson:"_id" toml:"id"`
	Value string `json:"value" bson:"value" toml:"value"`
	Label string `json:"label" bson:"label" toml:"label"`
	Icon  string `json:"icon,omitempty" bson:"icon,omitempty" toml:"icon"`
	Order int    `json:"order" bson:"order" toml:"order"`
}
