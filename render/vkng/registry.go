package vkng

import (
	"sort"

	"github.com/vkngwrapper/renderqueue/render"
)

// handleSource hands out process-unique handles so that a handle of one object kind
// can never be mistaken for a handle of another.
type handleSource struct {
	next render.Handle
}

func (s *handleSource) allocate() render.Handle {
	s.next++
	return s.next
}

// registry maps opaque handles to the driver objects they stand for.
type registry[T any] struct {
	source  *handleSource
	objects map[render.Handle]T
}

func newRegistry[T any](source *handleSource) registry[T] {
	return registry[T]{source: source, objects: make(map[render.Handle]T)}
}

func (r registry[T]) add(object T) render.Handle {
	handle := r.source.allocate()
	r.objects[handle] = object
	return handle
}

func (r registry[T]) addAll(objects []T) []render.Handle {
	handles := make([]render.Handle, len(objects))
	for idx, object := range objects {
		handles[idx] = r.add(object)
	}
	return handles
}

func (r registry[T]) get(handle render.Handle) T {
	return r.objects[handle]
}

func (r registry[T]) getAll(handles []render.Handle) []T {
	objects := make([]T, len(handles))
	for idx, handle := range handles {
		objects[idx] = r.objects[handle]
	}
	return objects
}

// remove forgets the handle and returns the object it referred to.
func (r registry[T]) remove(handle render.Handle) (T, bool) {
	object, ok := r.objects[handle]
	delete(r.objects, handle)
	return object, ok
}

func (r registry[T]) len() int {
	return len(r.objects)
}

// names flattens the name sets the driver reports into a sorted list.
func names[V any](set map[string]V) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
