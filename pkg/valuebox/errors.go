package valuebox

import (
	"errors"

	"github.com/ansel1/merry"
)

// Error kinds returned by the value engine. Every returned error wraps exactly one of
// these, so callers test with errors.Is or merry.Is.
var (
	ErrInvalidType               = errors.New("invalid type")
	ErrTypeMismatch              = errors.New("type mismatch")
	ErrUnsupportedType           = errors.New("unsupported type")
	ErrParse                     = errors.New("parse error")
	ErrValueOutOfRange           = errors.New("value out of range")
	ErrUnknownEnumValue          = errors.New("unknown enumeration value")
	ErrOddHexLength              = errors.New("hex string length is not even")
	ErrInvalidEthernetAddress    = errors.New("invalid ethernet address")
	ErrInvalidPrefixLength       = errors.New("invalid prefix length")
	ErrBufferTooSmall            = errors.New("buffer too small")
	ErrIntegerOverflow           = errors.New("integer overflow")
	ErrLengthOutOfRange          = errors.New("length out of range")
	ErrInvalidCast               = errors.New("invalid cast")
	ErrNotV4MappedAddress        = errors.New("not an IPv4-mapped IPv6 address")
	ErrIncompatibleAddressFamily = errors.New("incompatible address family")
	ErrPreconditionViolation     = errors.New("precondition violation")
)

func newError(kind error, format string, args ...interface{}) error {
	return merry.Here(kind).Appendf(format, args...)
}

func merryWrap(kind, cause error, format string, args ...interface{}) error {
	return merry.Here(kind).WithCause(cause).Appendf(format, args...)
}
