package models

import "github.com/google/uuid"

//relmodel:entity table=customers
type Customer struct {
	ID      uuid.UUID `db:",id,generated"`
	Name    string    `db:"customer_name"`
	Email   *string   `db:",nullable"`
	Address Address   `db:",embedded"`
	Orders  []Order   `rel:"o2m,column=customer_id"`
}

//relmodel:entity
type Order struct {
	ID       int       `db:",id"`
	Total    int64     `db:"total"`
	Status   string    `db:",enum=string"`
	Customer *Customer `rel:"m2o,column=customer_id"`
	Products []Product `rel:"m2m,table=order_products"`
}

//relmodel:entity
type Product struct {
	Code  int16  `db:",id"`
	Title string `db:"title"`
	Price int64  `db:"price,notnull"`
}

// Address is an embeddable value type; it carries no entity marker.
type Address struct {
	Street string `db:"street"`
	Zip    string `db:"postal_code,nullable"`
}
