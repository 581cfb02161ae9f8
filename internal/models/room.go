package models

// Room represents a physical room. The display name doubles as the
// lab-classification input for the room selector.
type Room struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
	Building string `db:"building" json:"building"`
}
