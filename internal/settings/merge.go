package settings

import (
	"fmt"

	"github.com/ariel-frischer/termkeys/internal/jsontree"
)

// ComputeMissing returns the desired bindings whose key chord is not already
// bound, in desired order, and whether any are missing. Chords match exactly
// and case-sensitively. The document is not modified.
func ComputeMissing(doc *Document, desired []Binding) ([]Binding, bool, error) {
	list, err := doc.Bindings()
	if err != nil {
		return nil, false, err
	}

	bound := boundChords(list)

	var missing []Binding
	for _, b := range desired {
		if _, ok := bound[b.Keys]; !ok {
			missing = append(missing, b)
		}
	}
	return missing, len(missing) > 0, nil
}

// Apply appends each binding to the end of the keybindings list in order.
// Existing entries are neither reordered nor deduplicated.
func Apply(doc *Document, toAppend []Binding) error {
	list, err := doc.Bindings()
	if err != nil {
		return err
	}
	for _, b := range toAppend {
		if err := list.Append(b.Value()); err != nil {
			return fmt.Errorf("appending %s binding: %w", b.Keys, err)
		}
	}
	return nil
}

// boundChords collects every "keys" chord in list. A record's keys may be a
// string or an array of strings; records of any other shape are skipped.
// Windows Terminal accepts an array of chords for one action, and each of
// them already occupies its chord, so appending another binding for it
// would only add a shadowed duplicate.
func boundChords(list *jsontree.Value) map[string]struct{} {
	chords := make(map[string]struct{})
	records, _ := list.AsArray()
	for _, record := range records {
		if record.Kind() != jsontree.Object {
			continue
		}
		keys, ok, _ := record.Get(keysKey)
		if !ok {
			continue
		}
		switch keys.Kind() {
		case jsontree.String:
			s, _ := keys.AsString()
			chords[s] = struct{}{}
		case jsontree.Array:
			items, _ := keys.AsArray()
			for _, item := range items {
				if s, err := item.AsString(); err == nil {
					chords[s] = struct{}{}
				}
			}
		}
	}
	return chords
}
