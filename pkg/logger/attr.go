package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// FormID records the form controller identifier under the key "form_id".
func FormID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("form_id", id)
}

// Form records the form variant under the key "form".
func Form(variant string) slog.Attr {
	return slog.String("form", variant)
}

// Field records a field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Status records a validation status under the key "status".
func Status(s string) slog.Attr {
	return slog.String("status", s)
}

// Phase records a controller phase under the key "phase".
func Phase(p string) slog.Attr {
	return slog.String("phase", p)
}

// Outcome records a callback outcome under the key "outcome".
func Outcome(o string) slog.Attr {
	return slog.String("outcome", o)
}

// Seq records a snapshot sequence number under the key "seq".
func Seq(n uint64) slog.Attr {
	return slog.Uint64("seq", n)
}
