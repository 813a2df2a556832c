package catalog

import "sort"

// CategoryDescriptor describes one tool category.
type CategoryDescriptor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

var categories = sortCategories([]CategoryDescriptor{
	{ID: "crypto", Name: "Crypto", Order: 1},
	{ID: "converter", Name: "Converter", Order: 2},
	{ID: "web", Name: "Web", Order: 3},
	{ID: "imgvid", Name: "Images & Videos", Order: 4},
	{ID: "dev", Name: "Development", Order: 5},
	{ID: "network", Name: "Network", Order: 6},
	{ID: "math", Name: "Math", Order: 7},
	{ID: "measure", Name: "Measurement", Order: 8},
	{ID: "text", Name: "Text", Order: 9},
	{ID: "data", Name: "Data", Order: 10},
})

func sortCategories(cats []CategoryDescriptor) []CategoryDescriptor {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Order < cats[j].Order
	})
	return cats
}

// Categories returns the category set sorted by Order. The returned slice
// is a copy and may be modified by the caller.
func Categories() []CategoryDescriptor {
	out := make([]CategoryDescriptor, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID returns the category with the given ID.
func CategoryByID(id string) (CategoryDescriptor, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryDescriptor{}, false
}

// IsKnownCategory reports whether id names a category in the fixed set.
func IsKnownCategory(id string) bool {
	_, ok := CategoryByID(id)
	return ok
}
