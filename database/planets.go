package database

import "kidspace/models"

func funFact(s string) *string { return &s }

// SolarSystem is the reference dataset written by SeedPlanets
var SolarSystem = []models.Planet{
	{
		Name:        "Mercury",
		Description: "The smallest planet and the closest one to the Sun. It has almost no air to keep it warm, so its nights are freezing.",
		FunFact:     funFact("A year on Mercury lasts only 88 Earth days!"),
	},
	{
		Name:        "Venus",
		Description: "The hottest planet, wrapped in thick clouds that trap heat like a giant blanket.",
		FunFact:     funFact("Venus spins backwards, so the Sun rises in the west there."),
	},
	{
		Name:        "Earth",
		Description: "Our home planet, the only world we know of with oceans of liquid water and living things.",
		FunFact:     funFact("Earth is the only planet not named after a god or goddess."),
	},
	{
		Name:        "Mars",
		Description: "The red planet, covered in rusty dust, with the tallest volcano in the solar system.",
		FunFact:     funFact("NASA rovers like Curiosity and Perseverance are exploring Mars right now."),
	},
	{
		Name:        "Jupiter",
		Description: "The biggest planet, a giant ball of gas with colorful stripes and storms.",
		FunFact:     funFact("Its Great Red Spot is a storm bigger than the whole Earth."),
	},
	{
		Name:        "Saturn",
		Description: "A gas giant famous for its beautiful rings made of ice and rock.",
		FunFact:     funFact("Saturn is so light that it would float in a giant bathtub of water."),
	},
	{
		Name:        "Uranus",
		Description: "An icy giant that rolls around the Sun tipped over on its side.",
		FunFact:     funFact("Uranus was the first planet found with a telescope."),
	},
	{
		Name:        "Neptune",
		Description: "The farthest planet from the Sun, a deep blue ice giant with super fast winds.",
		FunFact:     funFact("Winds on Neptune can blow faster than 2,000 kilometers per hour."),
	},
	{
		Name:        "Pluto",
		Description: "A dwarf planet in the icy Kuiper Belt, smaller than our Moon.",
		FunFact:     funFact("Pluto has a giant heart-shaped glacier on its surface."),
	},
}
