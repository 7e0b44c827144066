package usecase

import "github.com/vitrin/backend/internal/domain"

func floatPtr(v float64) *float64 { return &v }

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sampleCatalog is a small mixed catalog with one duplicate id
func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Beyaz Gömlek", Category: "Erkek Giyim", Subcategory: "Gömlek", Store: "Moda Evi", Price: "₺450", Rating: floatPtr(4.6), Likes: 120, ShareDate: "2024-03-01", Season: "İlkbahar"},
		{ID: 2, Title: "Mavi Gömlek", Category: "Kadın Giyim", Subcategory: "Üst Giyim", Store: "Trend", Price: "₺320", Rating: floatPtr(4.1), Likes: 80, ShareDate: "2024-05-10", Season: "Yaz"},
		{ID: 3, Title: "Yazlık Elbise", Category: "Kadın Giyim", Subcategory: "Elbise", Store: "Trend", Price: "₺600", Rating: floatPtr(4.8), Likes: 300, ShareDate: "2024-06-15", Season: "Yaz", Description: "Çiçek desenli pamuklu elbise"},
		{ID: 4, Title: "Deri Bot", Category: "Erkek Giyim", Subcategory: "Ayakkabı", Brand: "Kundura", Price: "₺1.250", Rating: floatPtr(3.9), Likes: 45, ShareDate: "2023-11-20", Season: "Kış"},
		{ID: 5, Title: "Topuklu Ayakkabı", Category: "Kadın Giyim", Subcategory: "Ayakkabı", Store: "Trend", Price: "₺780", Likes: 210, ShareDate: "not a date", Season: "Yaz"},
		{ID: 6, Title: "Kablosuz Kulaklık", Category: "Elektronik", Subcategory: "Kulaklık", Store: "Tekno", Price: "₺1.999", Rating: floatPtr(4.4), Likes: 500, ShareDate: "2024-01-05"},
		{ID: 7, Title: "Şişme Mont", Category: "Erkek Giyim", Subcategory: "Üst Giyim", Store: "Moda Evi", Price: "", Likes: 60, Season: "Kış"},
		{ID: 3, Title: "Yazlık Elbise", Category: "Kadın Giyim", Subcategory: "Elbise", Store: "Trend", Price: "₺600", Rating: floatPtr(4.8), Likes: 300, ShareDate: "2024-06-15", Season: "Yaz", Description: "Çiçek desenli pamuklu elbise"},
	}
}
