package search

// Field names a searchable listing attribute. Renderers map fields to their
// store-specific column or document path.
type Field string

const (
	FieldID            Field = "id"
	FieldStatus        Field = "status"
	FieldPrice         Field = "price"
	FieldOriginalPrice Field = "originalPrice"
	FieldBedrooms      Field = "bedrooms"
	FieldBathrooms     Field = "bathrooms"
	FieldPropertyType  Field = "propertyType"
	FieldCity          Field = "city"
	FieldState         Field = "state"
	FieldZipCode       Field = "zipCode"
	FieldSquareFeet    Field = "squareFeet"
	FieldYearBuilt     Field = "yearBuilt"
	FieldLotSize       Field = "lotSize"
	FieldCreatedAt     Field = "createdAt"
	FieldOpenHouseAt   Field = "openHouseAt"
	FieldAmenities     Field = "amenities"
	FieldFeatured      Field = "featured"
	FieldAgentID       Field = "agentId"
)

// Op is a comparison operator.
type Op string

const (
	OpEq  Op = "="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGte Op = ">="
)

// Clause is a typed predicate over a listing. The concrete types below are
// the only implementations; renderers switch on them.
type Clause interface {
	isClause()
}

// Always is the tautology. Inactive filters compile to Always.
type Always struct{}

// Compare tests Field Op Value. Value is a float64, int, string, bool or
// time.Time. A missing field never satisfies a comparison.
type Compare struct {
	Field Field
	Op    Op
	Value any
}

// CompareFields tests Left Op Right for two fields of the same listing.
type CompareFields struct {
	Left  Field
	Op    Op
	Right Field
}

// NotNull requires an optional field to be present.
type NotNull struct {
	Field Field
}

// Prefix is a case-insensitive prefix match of Text against Field.
type Prefix struct {
	Field Field
	Text  string
}

// ContainsAll requires the set-valued Field to contain every one of Values.
type ContainsAll struct {
	Field  Field
	Values []string
}

// And is a conjunction. An empty And is true.
type And []Clause

// Or is a disjunction. An empty Or is false.
type Or []Clause

func (Always) isClause()        {}
func (Compare) isClause()       {}
func (CompareFields) isClause() {}
func (NotNull) isClause()       {}
func (Prefix) isClause()        {}
func (ContainsAll) isClause()   {}
func (And) isClause()           {}
func (Or) isClause()            {}

// Conjoin builds an And from clauses, flattening nested conjunctions and
// dropping tautologies. The result is Always when nothing remains.
func Conjoin(clauses ...Clause) Clause {
	var out And
	for _, c := range clauses {
		switch c := c.(type) {
		case nil, Always:
			continue
		case And:
			if inner, ok := Conjoin(c...).(And); ok {
				out = append(out, inner...)
			}
		default:
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return Always{}
	}
	return out
}
