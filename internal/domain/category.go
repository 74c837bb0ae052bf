package domain

// CategoryKind tags a category as a top-level session or a child category.
// The tree is exactly two levels deep: a SubCategory always has a Session parent.
type CategoryKind int

const (
	KindSession CategoryKind = iota + 1
	KindSubCategory
)

func (k CategoryKind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindSubCategory:
		return "category"
	default:
		return "unknown"
	}
}

type Category struct {
	ID   int32
	Name string
	Kind CategoryKind

	// parentID is set only for KindSubCategory.
	parentID int32
}

func NewSession(name string) Category {
	return Category{Name: name, Kind: KindSession}
}

func NewSubCategory(name string, parentID int32) Category {
	return Category{Name: name, Kind: KindSubCategory, parentID: parentID}
}

// CategoryFromParent builds a category from a nullable parent reference.
func CategoryFromParent(id int32, name string, parentID *int32) Category {
	var c Category
	if parentID == nil {
		c = NewSession(name)
	} else {
		c = NewSubCategory(name, *parentID)
	}
	c.ID = id

	return c
}

func (c Category) Parent() (int32, bool) {
	if c.Kind != KindSubCategory {
		return 0, false
	}
	return c.parentID, true
}

// ParentRef is the nullable form stored in the categories table.
func (c Category) ParentRef() *int32 {
	id, ok := c.Parent()
	if !ok {
		return nil
	}
	return &id
}

func (c Category) Validate() error {
	if c.Name == "" {
		return &ValidationError{Kind: ErrInvalidCategory, Reason: "name is empty"}
	}
	if id, ok := c.Parent(); ok {
		if id <= 0 {
			return &ValidationError{Kind: ErrInvalidCategory, Reason: "parent_id is not positive"}
		}
		if c.ID != 0 && id == c.ID {
			return &ValidationError{Kind: ErrInvalidParent, Reason: "category cannot be its own parent"}
		}
	}

	return nil
}
