package badrel

//relmodel:entity
type User struct {
	ID   int    `db:",id"`
	Team string `rel:"o2m"`
}
