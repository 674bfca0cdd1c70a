package models

// Tech is a catalog technology. Name is unique.
type Tech struct {
	ID          int64
	Name        string
	Description *string
}

// Project is a catalog project. Name is unique. Techs is populated only when
// the caller asks for the linked technologies.
type Project struct {
	ID          int64
	Name        string
	Description *string
	Techs       []Tech
}
