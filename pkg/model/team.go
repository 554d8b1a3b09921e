package model

// Team is one of the club's own teams, loaded from the inventory file.
// Age is the age category (e.g. 15 for a U15 side); nil for open teams.
type Team struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
	Age  *int   `yaml:"age,omitempty" json:"age,omitempty"`
}
