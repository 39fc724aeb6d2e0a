// Package fixture builds crates from YAML descriptions. Fixtures stand in for
// the compiler bridge in tests and on the command line.
//
// A fixture lists items the way they appear in source:
//
//	crate: demo
//	file: demo.rs
//	items:
//	  - kind: static
//	    name: LIMIT
//	    type: u32
//	    init: {lit: {kind: int, value: "10"}}
//	  - kind: mod
//	    name: outer
//	    items:
//	      - kind: fn
//	        name: inner
//	        body: {}
//
// Nodes without an explicit line are placed on consecutive lines.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/pkg/ast"
)

// File is the root of a fixture.
type File struct {
	Crate string `yaml:"crate"`
	File  string `yaml:"file"`
	Items []Item `yaml:"items"`
}

// Item describes any item. Which fields apply depends on Kind.
type Item struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
	Vis  string `yaml:"vis"`
	Line int    `yaml:"line"`

	// static, const, type
	Type    string `yaml:"type"`
	Mutable bool   `yaml:"mutable"`
	Init    *Expr  `yaml:"init"`

	// extern crate, use
	Crate  string `yaml:"crate"`
	Rename string `yaml:"rename"`
	Path   string `yaml:"path"`
	Glob   bool   `yaml:"glob"`

	// fn
	Params  []Param `yaml:"params"`
	Returns string  `yaml:"returns"`
	Body    *Body   `yaml:"body"`
	Const   bool    `yaml:"const"`
	Unsafe  bool    `yaml:"unsafe"`

	// struct, enum
	Shape    string    `yaml:"shape"`
	Fields   []Field   `yaml:"fields"`
	Variants []Variant `yaml:"variants"`

	// mod
	Items []Item `yaml:"items"`
}

type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Field struct {
	Name string `yaml:"name"`
	Vis  string `yaml:"vis"`
	Type string `yaml:"type"`
}

type Variant struct {
	Name         string  `yaml:"name"`
	Shape        string  `yaml:"shape"`
	Fields       []Field `yaml:"fields"`
	Discriminant *Expr   `yaml:"discriminant"`
}

type Body struct {
	Stmts []Stmt `yaml:"stmts"`
	Tail  *Expr  `yaml:"tail"`
}

// Stmt sets exactly one of Let, Item or Expr.
type Stmt struct {
	Line int   `yaml:"line"`
	Let  *Let  `yaml:"let"`
	Item *Item `yaml:"item"`
	Expr *Expr `yaml:"expr"`
}

type Let struct {
	Name    string `yaml:"name"`
	Mutable bool   `yaml:"mutable"`
	Type    string `yaml:"type"`
	Init    *Expr  `yaml:"init"`
	Else    *Expr  `yaml:"else"`
}

// Expr sets exactly one field.
type Expr struct {
	Lit     *Lit     `yaml:"lit"`
	Path    string   `yaml:"path"`
	Unary   *Unary   `yaml:"unary"`
	Binary  *Binary  `yaml:"binary"`
	Call    *Call    `yaml:"call"`
	Field   *Access  `yaml:"field"`
	Block   *Body    `yaml:"block"`
	If      *If      `yaml:"if"`
	Closure *Closure `yaml:"closure"`
	Return  *Return  `yaml:"return"`
}

type Lit struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type Unary struct {
	Op   string `yaml:"op"`
	Expr *Expr  `yaml:"expr"`
}

type Binary struct {
	Op  string `yaml:"op"`
	Lhs *Expr  `yaml:"lhs"`
	Rhs *Expr  `yaml:"rhs"`
}

type Call struct {
	Callee *Expr  `yaml:"callee"`
	Args   []Expr `yaml:"args"`
}

type Access struct {
	Expr *Expr  `yaml:"expr"`
	Name string `yaml:"name"`
}

type If struct {
	Cond *Expr `yaml:"cond"`
	Then Body  `yaml:"then"`
	Else *Expr `yaml:"else"`
}

type Closure struct {
	Params []Param `yaml:"params"`
	Body   *Expr   `yaml:"body"`
}

type Return struct {
	Value *Expr `yaml:"value"`
}

// ParseError reports a fixture that cannot be decoded or built.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Decode reads a fixture. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: "empty fixture"}
		}
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	return &f, nil
}

// Parse decodes and builds a fixture. name is used for the crate and file
// names when the fixture does not set them.
func Parse(data []byte, name string) (*ast.Crate, error) {
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = name
		}
		return nil, err
	}
	if f.Crate == "" {
		f.Crate = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if f.File == "" {
		f.File = name
	}
	crate, err := Build(f)
	if err != nil {
		return nil, &ParseError{File: name, Message: err.Error()}
	}
	return crate, nil
}

// Load reads and builds the fixture at path.
func Load(path string) (*ast.Crate, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data, path)
}
