package schema

import (
	"fmt"
)

// Transforms address a container by a path of field names from the root.
// An empty path means the root object; each path element must name an
// object field or an array whose element kind is object. Every transform
// returns a new tree and leaves the input untouched.

// AddField appends a field to the container at path.
func AddField(o *Object, path []string, f Field) (*Object, error) {
	out := o.Clone()
	container, err := containerAt(out, path)
	if err != nil {
		return nil, err
	}
	for _, existing := range *container {
		if existing.Name == f.Name {
			return nil, fmt.Errorf("schema: field %q already exists at %v", f.Name, path)
		}
	}
	*container = append(*container, f)
	return out, nil
}

// RemoveField deletes the named field from the container at path.
func RemoveField(o *Object, path []string, name string) (*Object, error) {
	out := o.Clone()
	container, err := containerAt(out, path)
	if err != nil {
		return nil, err
	}
	idx, err := indexOf(*container, name, path)
	if err != nil {
		return nil, err
	}
	*container = append((*container)[:idx], (*container)[idx+1:]...)
	return out, nil
}

// UpdateField replaces the named field in the container at path. The
// replacement may rename the field as long as the new name stays unique.
func UpdateField(o *Object, path []string, name string, f Field) (*Object, error) {
	out := o.Clone()
	container, err := containerAt(out, path)
	if err != nil {
		return nil, err
	}
	idx, err := indexOf(*container, name, path)
	if err != nil {
		return nil, err
	}
	if f.Name != name {
		for _, existing := range *container {
			if existing.Name == f.Name {
				return nil, fmt.Errorf("schema: field %q already exists at %v", f.Name, path)
			}
		}
	}
	(*container)[idx] = f
	return out, nil
}

// MoveField shifts the named field to position to within its container,
// preserving the relative order of the others.
func MoveField(o *Object, path []string, name string, to int) (*Object, error) {
	out := o.Clone()
	container, err := containerAt(out, path)
	if err != nil {
		return nil, err
	}
	idx, err := indexOf(*container, name, path)
	if err != nil {
		return nil, err
	}
	if to < 0 || to >= len(*container) {
		return nil, fmt.Errorf("schema: move %q: position %d out of range", name, to)
	}

	fields := *container
	f := fields[idx]
	fields = append(fields[:idx], fields[idx+1:]...)
	rest := make([]Field, 0, len(fields)+1)
	rest = append(rest, fields[:to]...)
	rest = append(rest, f)
	rest = append(rest, fields[to:]...)
	*container = rest
	return out, nil
}

func indexOf(fields []Field, name string, path []string) (int, error) {
	for i, f := range fields {
		if f.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("schema: no field %q at %v", name, path)
}

// containerAt resolves path to the child-field slice it addresses, so
// transforms can edit it in place on an already-cloned tree.
func containerAt(o *Object, path []string) (*[]Field, error) {
	container := &o.Fields
	for depth, name := range path {
		idx, err := indexOf(*container, name, path[:depth])
		if err != nil {
			return nil, err
		}
		f := &(*container)[idx]

		switch f.Kind {
		case KindObject:
			container = &f.Fields
		case KindArray:
			if f.Elem == nil || f.Elem.Kind != KindObject {
				return nil, fmt.Errorf("schema: field %q is not an array of objects", name)
			}
			container = &f.Elem.Fields
		default:
			return nil, fmt.Errorf("schema: field %q has no child fields", name)
		}
	}
	return container, nil
}
