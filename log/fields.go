package log

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Internal mark the error severe, due to issues in code.
	Internal = zap.String("severe_error", "internal")
)

func Stage(stage string) zap.Field {
	return zap.String("stage", stage)
}

func ByteField(key string, data []byte) zap.Field {
	if utf8.Valid(data) {
		return zap.ByteString(key, data)
	} else {
		return zap.Binary(key, data)
	}
}

type elapsed struct {
	t   time.Time
	key string
}

func (v *elapsed) MarshalLogObject(e zapcore.ObjectEncoder) error {
	e.AddDuration(v.key, time.Since(v.t))
	return nil
}

// Elapsed records the duration since the field was constructed, at the time
// the entry is encoded.
func Elapsed(key string) zap.Field {
	return zap.Inline(&elapsed{
		t:   time.Now(),
		key: key,
	})
}
