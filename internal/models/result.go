package models

// LineCost is the computed cost of one recipe line
type LineCost struct {
	IngredientID    string  `json:"ingredientId"`
	IngredientName  string  `json:"ingredientName"`
	UsedWeight      float64 `json:"usedWeight"`
	PackWeight      float64 `json:"packWeight"`
	IngredientPrice float64 `json:"ingredientPrice"`
	IngredientCost  float64 `json:"ingredientCost"`
	CostPerGram     float64 `json:"costPerGram"`
}

// RecipeResult is the full cost breakdown and retail price of a recipe at a
// given profit percentage
type RecipeResult struct {
	RecipeID             string     `json:"recipeId"`
	RecipeName           string     `json:"recipeName"`
	Ingredients          []LineCost `json:"ingredients"`
	IngredientsTotalCost float64    `json:"ingredientsTotalCost"`
	ExtraCosts           float64    `json:"extraCosts"`
	TotalCost            float64    `json:"totalCost"`
	ProfitPercentage     float64    `json:"profitPercentage"`
	ProfitAmount         float64    `json:"profitAmount"`
	FinalPrice           float64    `json:"finalPrice"`
}
