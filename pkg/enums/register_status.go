package enums

// RegisterStatus is the state of a cash register session.
type RegisterStatus string

const (
	RegisterStatusOpen   RegisterStatus = "open"
	RegisterStatusClosed RegisterStatus = "closed"
)

// IsValid reports whether the value is a known RegisterStatus.
func (s RegisterStatus) IsValid() bool {
	return s == RegisterStatusOpen || s == RegisterStatusClosed
}
