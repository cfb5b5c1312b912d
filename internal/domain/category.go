package domain

type Category struct {
	ID            int    `json:"id"`
	CategoryName  string `json:"categoryName"`
	CategoryImage string `json:"categoryImage"`
	Description   string `json:"description"`
}
