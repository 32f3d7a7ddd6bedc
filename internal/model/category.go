package model

// Category identifies an interview question category.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryBehavioral Category = "behavioral"
	CategoryManagement Category = "management"
	CategorySales      Category = "sales"
)

// Categories lists every supported category in a stable order.
var Categories = []Category{
	CategoryTechnical,
	CategoryBehavioral,
	CategoryManagement,
	CategorySales,
}

// DisplayName returns the human-readable category label.
func (c Category) DisplayName() string {
	switch c {
	case CategoryTechnical:
		return "Technical Interview"
	case CategoryBehavioral:
		return "Behavioral Interview"
	case CategoryManagement:
		return "Management Interview"
	case CategorySales:
		return "Sales & Marketing"
	default:
		return string(c)
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategoryManagement, CategorySales:
		return true
	}
	return false
}

// CategoryInfo is the categories-listing payload.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}
