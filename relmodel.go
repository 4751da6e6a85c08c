// Package relmodel builds a validated persistence entity model from
// annotated Go struct declarations.
//
// The heavy lifting happens in two stages. Package compiler/load
// discovers annotated declarations in a package tree and flattens them
// into ordered collections; package compiler/gen assembles those
// collections into a cross-referenced graph of entity definitions,
// resolving identifier and property types, table and column names, and
// synthesizing the inverse side of one-directional relationships.
//
// This package ties the two together for the common case:
//
//	graphs, err := relmodel.Load("./models/...")
package relmodel

import (
	"github.com/syssam/relmodel/compiler/gen"
	"github.com/syssam/relmodel/compiler/load"
)

// Load parses the packages matched by the given patterns and builds
// the entity model with the default configuration.
func Load(patterns ...string) (*gen.Graphs, error) {
	return LoadConfig(&load.Config{Patterns: patterns})
}

// LoadConfig parses and builds with an explicit configuration.
func LoadConfig(cfg *load.Config) (*gen.Graphs, error) {
	decls, err := load.Parse(cfg)
	if err != nil {
		return nil, err
	}
	return gen.Build(decls)
}
