package rangeparser

import (
	"github.com/rs/zerolog"
)

var nopLogger = zerolog.Nop()

// Options tunes a parse. The zero value gives the default behaviour.
type Options struct {
	// Combine merges overlapping and adjacent ranges before returning.
	Combine bool
	// SentinelErrors makes argument errors return ErrInvalidArgument
	// instead of panicking with an *ArgumentError.
	SentinelErrors bool
	// Logger for trace events about dropped ranges. Nothing is logged if nil.
	Logger *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &nopLogger
}

// invalid reports an argument error the way the options ask for.
func (o Options) invalid(err *ArgumentError) error {
	if !o.SentinelErrors {
		panic(err)
	}
	o.logger().Trace().Str("argument", err.Argument).Msg(err.Error())
	return ErrInvalidArgument
}
