package badtag

//relmodel:entity
type User struct {
	ID   int    `db:",id"`
	Name string `db:",bogus"`
}
