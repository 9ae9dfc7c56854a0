package query

import (
	"fmt"

	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
)

// Error is the typed failure a processor returns instead of the raw
// underlying error; the cause text stays embedded in the message.
type Error struct {
	Kind     openstack.Kind
	Singular string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to retrieve OpenStack %s information: %v", e.Singular, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func errUnsupportedKind(kind openstack.Kind) error {
	return fmt.Errorf("unsupported resource kind: %s", kind)
}
