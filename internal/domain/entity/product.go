package entity

import (
	"time"
)

// Categories is the closed set of product categories.
var Categories = []string{
	"Instruments",
	"Consommables",
	"Équipements lourds",
	"Hygiène & Stérilisation",
	"Radiologie",
	"Prothèse",
	"Implantologie",
	"Orthodontie",
	"Endodontie",
	"Parodontologie",
	"Autres",
}

// StockUnits is the closed set of stock units.
var StockUnits = []string{"unité", "boîte", "paquet", "set", "kg", "litre"}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

type ProductImage struct {
	URL        string `json:"url" firestore:"url"`
	ObjectName string `json:"object_name,omitempty" firestore:"objectName,omitempty"`
	AltText    string `json:"alt_text,omitempty" firestore:"altText,omitempty"`
}

type Stock struct {
	Quantity int    `json:"quantity" firestore:"quantity"`
	Unit     string `json:"unit" firestore:"unit"`
}

type Specs struct {
	Reference     string `json:"reference,omitempty" firestore:"reference,omitempty"`
	Dimensions    string `json:"dimensions,omitempty" firestore:"dimensions,omitempty"`
	Weight        string `json:"weight,omitempty" firestore:"weight,omitempty"`
	Material      string `json:"material,omitempty" firestore:"material,omitempty"`
	Certification string `json:"certification,omitempty" firestore:"certification,omitempty"`
	Origin        string `json:"origin,omitempty" firestore:"origin,omitempty"`
}

type Shipping struct {
	Type     string   `json:"type" firestore:"type"` // "standard", "express", "heavy_equipment", "quote"
	LeadTime string   `json:"lead_time,omitempty" firestore:"leadTime,omitempty"`
	Fee      float64  `json:"fee" firestore:"fee"`
	Zones    []string `json:"zones,omitempty" firestore:"zones,omitempty"`
}

type RatingAggregate struct {
	Score float64 `json:"score" firestore:"score"`
	Count int     `json:"count" firestore:"count"`
}

type Promo struct {
	Active  bool      `json:"active" firestore:"active"`
	Price   float64   `json:"price,omitempty" firestore:"price,omitempty"`
	EndDate time.Time `json:"end_date,omitempty" firestore:"endDate,omitempty"`
}

type Product struct {
	ID          string  `json:"id" firestore:"id"`
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"`
	SubCategory string  `json:"sub_category,omitempty" firestore:"subCategory,omitempty"`
	Brand       string  `json:"brand,omitempty" firestore:"brand,omitempty"`
	Price       float64 `json:"price" firestore:"price"`
	Currency    string  `json:"currency" firestore:"currency"`

	Stock      Stock          `json:"stock" firestore:"stock"`
	Images     []ProductImage `json:"images" firestore:"images"`
	SupplierID string         `json:"supplier_id" firestore:"supplierId"`

	Specs    Specs           `json:"specs,omitempty" firestore:"specs,omitempty"`
	Shipping Shipping        `json:"shipping" firestore:"shipping"`
	Rating   RatingAggregate `json:"rating" firestore:"rating"`
	Promo    *Promo          `json:"promo,omitempty" firestore:"promo,omitempty"`

	Active     bool `json:"active" firestore:"active"`
	Views      int  `json:"views" firestore:"views"`
	SalesCount int  `json:"sales_count" firestore:"salesCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
