package model

// Rol is reference data seeded at startup; usuarios carry the rol name and
// the JWT middleware enforces it per route.
type Rol struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"uniqueIndex;not null"`

	Funciones []Funcion `gorm:"foreignKey:RolID"`
}

func (Rol) TableName() string { return "roles" }

// Funcion names a capability granted to a rol.
type Funcion struct {
	ID     uint   `gorm:"primaryKey"`
	RolID  uint   `gorm:"index;not null"`
	Nombre string `gorm:"not null"`
}

func (Funcion) TableName() string { return "funciones" }
