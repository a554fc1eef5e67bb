package search

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonPaths maps fields to paths in listing documents.
var bsonPaths = map[Field]string{
	FieldID:            "_id",
	FieldStatus:        "status",
	FieldPrice:         "price",
	FieldOriginalPrice: "originalPrice",
	FieldBedrooms:      "bedrooms",
	FieldBathrooms:     "bathrooms",
	FieldPropertyType:  "propertyType",
	FieldCity:          "address.city",
	FieldState:         "address.state",
	FieldZipCode:       "address.zipCode",
	FieldSquareFeet:    "squareFeet",
	FieldYearBuilt:     "yearBuilt",
	FieldLotSize:       "lotSize",
	FieldCreatedAt:     "createdAt",
	FieldOpenHouseAt:   "openHouseAt",
	FieldAmenities:     "amenities",
	FieldFeatured:      "featured",
	FieldAgentID:       "agentId",
}

var bsonOps = map[Op]string{
	OpEq:  "$eq",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpGte: "$gte",
}

// RenderBSON renders a clause as a MongoDB query filter.
func RenderBSON(c Clause) bson.D {
	switch c := c.(type) {
	case nil, Always:
		return bson.D{}
	case And:
		if len(c) == 0 {
			return bson.D{}
		}
		return bson.D{{Key: "$and", Value: renderBSONList(c)}}
	case Or:
		if len(c) == 0 {
			// $or rejects an empty array; match nothing instead.
			return bson.D{{Key: "_id", Value: bson.D{{Key: "$exists", Value: false}}}}
		}
		return bson.D{{Key: "$or", Value: renderBSONList(c)}}
	case Compare:
		return bson.D{{Key: bsonPath(c.Field), Value: bson.D{{Key: bsonOps[c.Op], Value: c.Value}}}}
	case CompareFields:
		return bson.D{{Key: "$expr", Value: bson.D{{
			Key:   bsonOps[c.Op],
			Value: bson.A{"$" + bsonPath(c.Left), "$" + bsonPath(c.Right)},
		}}}}
	case NotNull:
		return bson.D{{Key: bsonPath(c.Field), Value: bson.D{{Key: "$ne", Value: nil}}}}
	case Prefix:
		return bson.D{{Key: bsonPath(c.Field), Value: primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(c.Text),
			Options: "i",
		}}}
	case ContainsAll:
		return bson.D{{Key: bsonPath(c.Field), Value: bson.D{{Key: "$all", Value: c.Values}}}}
	}
	panic(fmt.Sprintf("search: unknown clause %T", c))
}

// RenderBSONSort renders sort keys as a MongoDB sort document.
func RenderBSONSort(orders []Order) bson.D {
	sort := make(bson.D, 0, len(orders))
	for _, o := range orders {
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: bsonPath(o.Field), Value: dir})
	}
	return sort
}

func renderBSONList(clauses []Clause) bson.A {
	out := make(bson.A, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, RenderBSON(c))
	}
	return out
}

func bsonPath(f Field) string {
	p, ok := bsonPaths[f]
	if !ok {
		panic("search: no document path for field " + string(f))
	}
	return p
}
