package mapcmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
)

// Bind sets one target field's binding from an expression of the form
// "path=<dot.path>" or "default=<json literal>" and persists the mapfile.
func (w *Workspace) Bind(field, expr string) error {
	if field == "" {
		err := errors.New("target field name cannot be empty")
		w.broadcast(EventBound{Err: err, Field: field})

		return err
	}

	logger := slog.With(slog.String("cmd", "bind"), slog.String("field", field))

	err := w.bind(field, expr)
	if err != nil {
		w.broadcast(EventBound{Err: err, Field: field})

		return err
	}

	logger.Info("bound target field")
	w.broadcast(EventBound{Field: field})

	return nil
}

func (w *Workspace) bind(field, expr string) error {
	target, err := w.Registry.Get(field)
	if err != nil {
		return err
	}

	binding, err := dtomap.ParseBinding(expr)
	if err != nil {
		return err
	}

	m, err := w.loadMapfile()
	if err != nil {
		return err
	}

	if binding.Path != "" {
		_, doc, err := w.loadSourceSchema()
		if err != nil {
			return err
		}

		if !doc.HasLeaf(binding.Path) {
			return fmt.Errorf("path %q is not a leaf path of the source schema, run paths to list them",
				binding.Path)
		}

		leaf, err := doc.Resolve(binding.Path)
		if err != nil {
			return err
		}

		if !target.Accepts(leaf.Type) {
			return fmt.Errorf("target field %q wants %s, but path %q has type %s",
				field, target.Type, binding.Path, leaf.Type)
		}
	}

	m.Bindings[field] = binding

	return m.Save(w.mapfilePath())
}

// Unbind removes one target field's binding and persists the mapfile.
func (w *Workspace) Unbind(field string) error {
	err := w.unbind(field)
	if err != nil {
		w.broadcast(EventBound{Err: err, Field: field})

		return err
	}

	slog.Info("unbound target field", slog.String("field", field))
	w.broadcast(EventBound{Field: field})

	return nil
}

func (w *Workspace) unbind(field string) error {
	m, err := w.loadMapfile()
	if err != nil {
		return err
	}

	if _, ok := m.Bindings[field]; !ok {
		return fmt.Errorf("target field %q is not bound", field)
	}

	delete(m.Bindings, field)

	return m.Save(w.mapfilePath())
}

// SetClassName updates the class name and persists the mapfile.
func (w *Workspace) SetClassName(name string) error {
	if name == "" {
		return errors.New("class name cannot be empty")
	}

	m, err := w.loadMapfile()
	if err != nil {
		return err
	}

	m.ClassName = name

	return m.Save(w.mapfilePath())
}
