package models

// Planet is static reference data about a body of the solar system
type Planet struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	FunFact     *string `json:"fun_fact"`
}
