package usecase

import "github.com/vitrin/backend/internal/domain"

// Parent categories of the marketplace
const (
	CategoryWomen       = "Kadın Giyim"
	CategoryMen         = "Erkek Giyim"
	CategoryElectronics = "Elektronik"
	CategoryHome        = "Ev & Yaşam"
	CategoryCosmetics   = "Kozmetik"
	CategoryMotherBaby  = "Anne & Bebek"
	CategorySports      = "Spor & Outdoor"
	CategoryBooks       = "Kitap & Hobi"
)

// categoryTree lists each parent with the subcategories it owns, in display
// order. A subcategory listed under several parents resolves to the first.
var categoryTree = []struct {
	Parent        string
	Subcategories []string
}{
	{CategoryWomen, []string{"Elbise", "Etek", "Bluz", "Üst Giyim", "Alt Giyim", "Ayakkabı", "Aksesuar", "Çanta"}},
	{CategoryMen, []string{"Takım Elbise", "Gömlek", "Üst Giyim", "Alt Giyim", "Ayakkabı", "Aksesuar"}},
	{CategoryElectronics, []string{"Telefon", "Bilgisayar", "Kulaklık", "Akıllı Saat", "Tablet"}},
	{CategoryHome, []string{"Mobilya", "Dekorasyon", "Mutfak", "Ev Tekstili", "Aydınlatma"}},
	{CategoryCosmetics, []string{"Cilt Bakımı", "Makyaj", "Parfüm", "Saç Bakımı"}},
	{CategoryMotherBaby, []string{"Bebek Giyim", "Oyuncak", "Bebek Bakım"}},
	{CategorySports, []string{"Spor Giyim", "Kamp", "Fitness", "Bisiklet"}},
	{CategoryBooks, []string{"Kitap", "Hobi", "Müzik Aletleri"}},
}

// commonSubcategories are shared by the women's and men's clothing trees
var commonSubcategories = map[string]struct{}{
	"Üst Giyim": {},
	"Alt Giyim": {},
	"Ayakkabı":  {},
	"Aksesuar":  {},
}

// clothingCategories is every category identifier a shared clothing
// subcategory may be listed under, including colloquial aliases.
var clothingCategories = []string{CategoryWomen, CategoryMen, "Kadın", "Erkek"}

// CategoryHierarchy resolves subcategories to their owning categories
type CategoryHierarchy struct {
	parents map[string]string
	shared  map[string]struct{}
	aliases []string
}

// NewCategoryHierarchy builds the hierarchy from the static category tree
func NewCategoryHierarchy() *CategoryHierarchy {
	parents := make(map[string]string)
	for _, node := range categoryTree {
		for _, sub := range node.Subcategories {
			if _, exists := parents[sub]; !exists {
				parents[sub] = node.Parent
			}
		}
	}

	return &CategoryHierarchy{
		parents: parents,
		shared:  commonSubcategories,
		aliases: clothingCategories,
	}
}

// ResolveParent returns the parent category of a subcategory, or false if
// the subcategory is not registered.
func (h *CategoryHierarchy) ResolveParent(subcategory string) (string, bool) {
	parent, ok := h.parents[subcategory]
	return parent, ok
}

// IsCommonSubcategory reports whether the subcategory is shared by several parents
func (h *CategoryHierarchy) IsCommonSubcategory(subcategory string) bool {
	_, ok := h.shared[subcategory]
	return ok
}

// AcceptedCategoriesFor returns the parent categories a product may carry
// when it is listed under the given subcategory.
func (h *CategoryHierarchy) AcceptedCategoriesFor(subcategory string) map[string]struct{} {
	accepted := make(map[string]struct{})
	if h.IsCommonSubcategory(subcategory) {
		for _, category := range h.aliases {
			accepted[category] = struct{}{}
		}
		return accepted
	}

	if parent, ok := h.ResolveParent(subcategory); ok {
		accepted[parent] = struct{}{}
	}
	return accepted
}

// IsParent reports whether name is a registered top-level category
func (h *CategoryHierarchy) IsParent(name string) bool {
	for _, node := range categoryTree {
		if node.Parent == name {
			return true
		}
	}
	return false
}

// Matches reports whether a product belongs to the selected category token.
// The token may name a parent category or a subcategory; a subcategory match
// also requires the product's parent to be one that owns the subcategory.
func (h *CategoryHierarchy) Matches(product domain.Product, token string) bool {
	if token == "" || token == domain.CategoryAll {
		return true
	}
	if product.Category == token {
		return true
	}
	if product.Subcategory != token {
		return false
	}
	_, ok := h.AcceptedCategoriesFor(token)[product.Category]
	return ok
}

// FilterByCategory keeps the products matching the category token, in order
func (h *CategoryHierarchy) FilterByCategory(products []domain.Product, token string) []domain.Product {
	if token == "" || token == domain.CategoryAll {
		return products
	}

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if h.Matches(p, token) {
			result = append(result, p)
		}
	}
	return result
}
