package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound es el resultado definido (no un fallo) para "no hay connected
// realm con ese slug" y "no existe item con ese id". Los callers deben
// distinguirlo de RemoteError con errors.Is.
var ErrNotFound = errors.New("not found")

// AuthError: el endpoint de tokens rechazó las credenciales, la respuesta no
// traía token, o un endpoint de datos devolvió 401/403 (token remoto
// expirado). No se reintenta internamente — el caller decide si invalida el
// token y reintenta, o aborta.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed: status=%d body=%s", e.Status, e.Body)
}

// RemoteError: cualquier status no exitoso y no-404 de un endpoint de datos,
// un fallo de red, o un body malformado. Lleva status y body para diagnóstico;
// la política de retry pertenece al caller.
type RemoteError struct {
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote call failed: %v", e.Err)
	}
	return fmt.Sprintf("remote call failed: status=%d body=%s", e.Status, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
