package badmarker

//relmodel:entity
type Money int64
