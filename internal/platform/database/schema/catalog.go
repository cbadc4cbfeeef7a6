// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReferenceTable describes the two slug-keyed reference tables, which share a shape.
type ReferenceTable struct {
	Table   string
	ID      string
	Name    string
	Slug    string
	SlugKey string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = ReferenceTable{
	Table:   "catalog.category",
	ID:      "id",
	Name:    "name",
	Slug:    "slug",
	SlugKey: "category_slug_key",
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = ReferenceTable{
	Table:   "catalog.genre",
	ID:      "id",
	Name:    "name",
	Slug:    "slug",
	SlugKey: "genre_slug_key",
}

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "categoryid",
}

// CatalogTitleGenreTable represents the 'catalog.titlegenre' junction table
type CatalogTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CatalogTitleGenre is the schema definition for catalog.titlegenre
var CatalogTitleGenre = CatalogTitleGenreTable{
	Table:   "catalog.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
