package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/termkeys/internal/jsonc"
	"github.com/ariel-frischer/termkeys/internal/jsontree"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a parsed settings file. The top level is always an object.
type Document struct {
	root *jsontree.Value
}

// NewDocument wraps an object value as a Document.
func NewDocument(root *jsontree.Value) (*Document, error) {
	if root.Kind() != jsontree.Object {
		return nil, &jsontree.ShapeError{Want: jsontree.Object, Got: root.Kind()}
	}
	return &Document{root: root}, nil
}

// Root returns the top-level object.
func (d *Document) Root() *jsontree.Value {
	return d.root
}

// Locate checks that path names an existing regular file and returns it.
// There is no fallback: a missing file is reported as ErrNotFound.
func Locate(path string) (string, error) {
	if path == "" {
		return "", notFoundError(path, errors.New("no settings path configured"))
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", notFoundError(path, err)
	}
	if info.IsDir() {
		return "", notFoundError(path, fmt.Errorf("is a directory"))
	}
	return path, nil
}

// Load reads and parses the settings file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, parseError(PhaseLoad, path, fmt.Errorf("reading settings file: %w", err))
	}

	doc, stripped, err := parse(data)
	if err != nil {
		perr := parseError(PhaseLoad, path, err)
		var syntaxErr *json.SyntaxError
		var encodingErr *jsontree.EncodingError
		switch {
		case errors.As(err, &syntaxErr):
			// Offset counts the bytes read including the offending one.
			perr.Line, perr.Column = jsonc.Position(stripped, syntaxErr.Offset-1)
		case errors.As(err, &encodingErr):
			perr.Line, perr.Column = jsonc.Position(stripped, encodingErr.Offset)
		}
		return nil, perr
	}
	return doc, nil
}

// Parse parses settings text. A leading UTF-8 byte order mark is ignored and
// full-line "//" comments are dropped before the JSON is decoded.
func Parse(data []byte) (*Document, error) {
	doc, _, err := parse(data)
	return doc, err
}

func parse(data []byte) (*Document, []byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	stripped := []byte(jsonc.StripLineComments(string(data)))

	root, err := jsontree.Decode(stripped)
	if err != nil {
		return nil, stripped, err
	}
	doc, err := NewDocument(root)
	if err != nil {
		return nil, stripped, fmt.Errorf("top-level value: %w", err)
	}
	return doc, stripped, nil
}

// EnsureBindingList creates an empty keybindings list when the member is
// absent or null. Calling it again is a no-op. A keybindings member of any
// other non-array kind is an error.
func (d *Document) EnsureBindingList() error {
	list, ok, err := d.root.Get(bindingsKey)
	if err != nil {
		return err
	}
	if !ok || list.IsNull() {
		return d.root.Set(bindingsKey, jsontree.NewArray())
	}
	if list.Kind() != jsontree.Array {
		return fmt.Errorf("%q: %w", bindingsKey, &jsontree.ShapeError{Want: jsontree.Array, Got: list.Kind()})
	}
	return nil
}

// Bindings returns the keybindings array.
func (d *Document) Bindings() (*jsontree.Value, error) {
	list, _, err := d.root.Get(bindingsKey)
	if err != nil {
		return nil, err
	}
	if list.Kind() != jsontree.Array {
		return nil, fmt.Errorf("%q: %w", bindingsKey, &jsontree.ShapeError{Want: jsontree.Array, Got: list.Kind()})
	}
	return list, nil
}

// Encode serializes the document with the given indent string.
func (d *Document) Encode(indent string) ([]byte, error) {
	return jsontree.Encode(d.root, indent)
}
