package valuebox

import (
	"github.com/vitalvas/radvalue/pkg/log"
)

var logger log.Logger = log.NewDefaultLogger()

// SetLogger replaces the logger precondition violations are reported to. It is not
// safe to call concurrently with other operations of the package.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.Discard()
	}
	logger = l
}

// precondition reports a caller bug in operation op. Debug builds panic, release
// builds return the error.
func precondition(op, format string, args ...interface{}) error {
	err := newError(ErrPreconditionViolation, op+": "+format, args...)
	logger.WithFields(log.Fields{"component": "valuebox", "op": op}).Error(err)
	onPrecondition(err)
	return err
}

func checkType(t Type, op string) error {
	if t == TypeInvalid {
		return precondition(op, "type is invalid")
	}
	return nil
}

func checkValid(v *Value, op string) error {
	if v == nil {
		return precondition(op, "nil value")
	}
	if v.typ == TypeInvalid {
		return precondition(op, "value is invalid")
	}
	return nil
}
