package models

// Ingredient represents a purchasable ingredient priced per full pack.
type Ingredient struct {
	ID         string  `json:"id"`
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"finite,gte=0"`
	PackWeight float64 `json:"packWeight" validate:"finite,gt=0"`
}

// GetID returns the ingredient identifier
func (i Ingredient) GetID() string {
	return i.ID
}

// WithID returns a copy of the ingredient carrying id
func (i Ingredient) WithID(id string) Ingredient {
	i.ID = id
	return i
}

// Clone returns an independent copy of the ingredient
func (i Ingredient) Clone() Ingredient {
	return i
}

// CostPerGram returns the price of a single gram of the pack.
// The result is only meaningful when PackWeight is positive.
func (i Ingredient) CostPerGram() float64 {
	return i.Price / i.PackWeight
}

// Validate checks the ingredient fields before it is stored
func (i Ingredient) Validate() error {
	return validateStruct(i)
}
