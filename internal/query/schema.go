package query

// Accessor reads one named field from a record. It may return a string, a
// []string, a bool, a number, a fmt.Stringer, a time.Time or nil when the
// record has no value for the field.
type Accessor[T any] func(T) any

// Schema describes the fields of a record type that specs may refer to.
type Schema[T any] struct {
	fields map[string]Accessor[T]
}

// NewSchema creates an empty schema.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{fields: make(map[string]Accessor[T])}
}

// Field registers an accessor under name and returns the schema for chaining.
func (s *Schema[T]) Field(name string, fn Accessor[T]) *Schema[T] {
	s.fields[name] = fn
	return s
}

// Lookup returns the accessor registered under name.
func (s *Schema[T]) Lookup(name string) (Accessor[T], bool) {
	if s == nil {
		return nil, false
	}
	fn, ok := s.fields[name]
	return fn, ok && fn != nil
}

// Has reports whether name is a known field.
func (s *Schema[T]) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}
