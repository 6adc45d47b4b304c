package model

// Category is the shared period enumeration used by both goals and
// intervals. Every category check in the application goes through this type.
type Category string

const (
	CategoryDaily   Category = "daily"
	CategoryMonthly Category = "monthly"
	CategoryYearly  Category = "yearly"
)

func Categories() []Category {
	return []Category{CategoryDaily, CategoryMonthly, CategoryYearly}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryDaily, CategoryMonthly, CategoryYearly:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
