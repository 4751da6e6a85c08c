// Package field defines the closed type categories of the entity model
// and the classifier that maps declared member types into them.
//
// Identifier members and scalar property members use separate
// categories with separate classification tables:
//
//	field.IDTypeOf(ref)  // IDUUID, IDString, IDInt, IDInt16, IDInt64
//	field.TypeOf(ref)    // TypeString, TypeBool, TypeInt64
//
// Classification is rank-based: each table is evaluated in order and
// the first matching rule wins, so a UUID type classifies as IDUUID
// even though it also answers the numeric question. A type matching no
// rule fails with an UnsupportedTypeError; there is no fallback
// category.
//
// The classifier never inspects types itself. Callers hand it an
// Oracle, an implementation that answers the fixed set of type
// questions, which keeps the discovery stage's type machinery out of
// this package.
package field
