package domain

import "time"

// Product — снимок товара из каталога. Каталог принадлежит внешнему сервису,
// здесь он только читается; Stock уменьшается исключительно при checkout.
type Product struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	ImageURL     string
	CategoryID   string
	CategoryName string
	PriceMinor   int64
	Stock        int32
	Active       bool
	CreatedAt    time.Time
}

// Display возвращает данные для отображения без остатков.
func (p Product) Display() ProductDisplay {
	return ProductDisplay{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		ImageURL:     p.ImageURL,
		CategoryName: p.CategoryName,
		PriceMinor:   p.PriceMinor,
		Active:       p.Active,
	}
}

// ProductDisplay — денормализованные данные товара для ответов API.
type ProductDisplay struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url"`
	CategoryName string `json:"category_name"`
	PriceMinor   int64  `json:"price_minor"`
	Active       bool   `json:"active"`
}
