package model

// Surface is the size class of a pitch.
type Surface string

const (
	SurfaceFull    Surface = "full"
	SurfaceCompact Surface = "compact"
)

// Pitch is immutable reference data loaded from the inventory file.
type Pitch struct {
	ID      string  `yaml:"id" json:"id" validate:"required"`
	Name    string  `yaml:"name" json:"name" validate:"required"`
	Surface Surface `yaml:"surface" json:"surface" validate:"required,oneof=full compact"`
}
