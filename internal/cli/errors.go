package cli

import "fmt"

type invalidIDError struct {
	kind string
	raw  string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("id de %s inválido: %q", e.kind, e.raw)
}

func errInvalidID(kind, raw string) error {
	return invalidIDError{kind: kind, raw: raw}
}

type abortedError struct{}

func (abortedError) Error() string { return "operación cancelada" }

func errAborted() error { return abortedError{} }
