package search

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlColumns maps fields to columns of the listings table.
var sqlColumns = map[Field]string{
	FieldID:            "id",
	FieldStatus:        "status",
	FieldPrice:         "price",
	FieldOriginalPrice: "original_price",
	FieldBedrooms:      "bedrooms",
	FieldBathrooms:     "bathrooms",
	FieldPropertyType:  "property_type",
	FieldCity:          "city",
	FieldState:         "state",
	FieldZipCode:       "zip_code",
	FieldSquareFeet:    "square_feet",
	FieldYearBuilt:     "year_built",
	FieldLotSize:       "lot_size",
	FieldCreatedAt:     "created_at",
	FieldOpenHouseAt:   "open_house_at",
	FieldAmenities:     "amenities",
	FieldFeatured:      "featured",
	FieldAgentID:       "agent_id",
}

// RenderSQL renders q as a PostgreSQL SELECT of columns from table, with
// positional arguments.
func RenderSQL(q Query, table, columns string) (string, []any) {
	var b sqlBuilder
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	sb.WriteString(" WHERE ")
	sb.WriteString(b.clause(q.Where))
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(renderSQLOrder(q.OrderBy))
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(q.Limit))
	}
	if q.Offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.arg(q.Offset))
	}
	return sb.String(), b.args
}

// RenderSQLCount renders the count of rows in table matching q.Where.
func RenderSQLCount(q Query, table string) (string, []any) {
	var b sqlBuilder
	where := b.clause(q.Where)
	return "SELECT COUNT(*) FROM " + table + " WHERE " + where, b.args
}

func renderSQLOrder(orders []Order) string {
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, sqlColumn(o.Field)+" "+dir)
	}
	return strings.Join(parts, ", ")
}

type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) clause(c Clause) string {
	switch c := c.(type) {
	case nil, Always:
		return "TRUE"
	case And:
		return b.join(c, " AND ", "TRUE")
	case Or:
		return b.join(c, " OR ", "FALSE")
	case Compare:
		return sqlColumn(c.Field) + " " + string(c.Op) + " " + b.arg(c.Value)
	case CompareFields:
		return sqlColumn(c.Left) + " " + string(c.Op) + " " + sqlColumn(c.Right)
	case NotNull:
		return sqlColumn(c.Field) + " IS NOT NULL"
	case Prefix:
		return "lower(" + sqlColumn(c.Field) + ") LIKE " + b.arg(strings.ToLower(escapeLike(c.Text))+"%")
	case ContainsAll:
		return sqlColumn(c.Field) + " @> " + b.arg(c.Values)
	}
	panic(fmt.Sprintf("search: unknown clause %T", c))
}

func (b *sqlBuilder) join(clauses []Clause, sep, empty string) string {
	if len(clauses) == 0 {
		return empty
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		s := b.clause(c)
		switch c.(type) {
		case And, Or:
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

func sqlColumn(f Field) string {
	col, ok := sqlColumns[f]
	if !ok {
		panic("search: no column for field " + string(f))
	}
	return col
}

// escapeLike escapes LIKE metacharacters so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
