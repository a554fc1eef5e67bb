package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/homestead/backend/internal/model"
)

// catalog はアメニティカタログファイルの形式
//
//	[[amenity]]
//	value = "pool"
//	label = "Swimming pool"
//	icon  = "pool"
type catalog struct {
	Amenities []*model.Amenity `toml:"amenity"`
}

func loadCatalog(path string) (*catalog, error) {
	var c catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return &c, c.normalize()
}

// normalize は value の重複・空を検出し、order 未指定の項目にファイル順の order を振る
func (c *catalog) normalize() error {
	seen := make(map[string]bool, len(c.Amenities))
	for i, a := range c.Amenities {
		a.Value = strings.TrimSpace(a.Value)
		a.Label = strings.TrimSpace(a.Label)
		if a.Value == "" || a.Label == "" {
			return fmt.Errorf("amenity %d: value and label are required", i+1)
		}
		if seen[a.Value] {
			return fmt.Errorf("amenity %q listed twice", a.Value)
		}
		seen[a.Value] = true
		if a.ID == "" {
			a.ID = a.Value
		}
		if a.Order == 0 {
			a.Order = (i + 1) * 10
		}
	}
	return nil
}
