package hpanic

import (
	"fmt"
	"runtime/debug"
)

type Option interface {
	do(*options)
}

type optionFunc func(*options)

func (f optionFunc) do(o *options) {
	f(o)
}

type options struct {
	wrap func(err error) error
}

// Error carries a recovered panic value and the stack it was raised from.
type Error struct {
	Value any
	Stack []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("Panic: %v", e.Value)
}

func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)

	return err
}

func RecoverV[T any](f func() (T, error), opts ...Option) (_ T, err error) {
	o := options{}
	for _, opt := range opts {
		opt.do(&o)
	}

	defer func() {
		if rerr := recover(); rerr != nil {
			err = &Error{Value: rerr, Stack: debug.Stack()}

			if o.wrap != nil {
				err = o.wrap(err)
			}
		}
	}()

	return f()
}

func Recover(f func() error, opts ...Option) error {
	_, err := RecoverV[struct{}](func() (struct{}, error) {
		return struct{}{}, f()
	}, opts...)

	return err
}

// Wrap is applied to the error built from a recovered panic.
func Wrap(f func(err error) error) Option {
	return optionFunc(func(o *options) {
		o.wrap = f
	})
}
