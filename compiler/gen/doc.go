// Package gen assembles the validated entity model consumed by the
// code-generation stage.
//
// # Architecture
//
// The model is built from the ordered declaration collections produced
// by package compiler/load:
//
//	Annotated structs (models/*.go)
//	        ↓
//	   load.Declarations (ordered collections)
//	        ↓
//	   Builder (fixed phase order, fail fast)
//	        ↓
//	   Graphs (one Graph per namespace)
//
// The Builder consumes each collection fully before the next: entities
// first, then identifiers, generated-value markers, scalar properties,
// embedded groups, and finally the relationship collections. The phase
// order is what makes the preconditions checkable locally: when a
// property is attached, every identifier that will ever exist already
// does.
//
// # Key Types
//
//   - Graphs: The validated model, one Graph per namespace
//   - Type: One entity with identifier, properties, edges, embeds
//   - Edge: One relationship; a separate concrete type per kind
//   - Builder: The multi-pass assembler
//
// # Error Handling
//
// The builder fails fast with structured error types:
//
//   - EntityNotMappedError: a declaration references an unregistered type
//   - MissingIDError: a member attached before its entity has an identifier
//   - GeneratedValueError: a generated-value marker without an identifier
//   - field.UnsupportedTypeError: a member type matching no category
//
// Each pairs with a sentinel so both errors.As and errors.Is work:
//
//	if errors.Is(err, gen.ErrMissingID) { ... }
package gen
