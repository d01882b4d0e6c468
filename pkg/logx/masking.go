package logx

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// maskingCore redacts sensitive fields and WIF-shaped strings in messages.
// Console only: the file log is the operator's record.
type maskingCore struct {
	zapcore.Core
	sensitive   map[string]struct{}
	maskPattern *regexp.Regexp
}

func newMaskingCore(c zapcore.Core) *maskingCore {
	keys := []string{
		"priv", "private", "private_key", "privatekey",
		"wif", "secret", "seed", "payload",
	}
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return &maskingCore{
		Core:      c,
		sensitive: m,
		// compressed WIF: 52 base58 chars; uncompressed: 51
		maskPattern: regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{51,52}\b`),
	}
}

func (m *maskingCore) With(fields []zapcore.Field) zapcore.Core {
	return &maskingCore{
		Core:        m.Core.With(m.redact(fields)),
		sensitive:   m.sensitive,
		maskPattern: m.maskPattern,
	}
}

func (m *maskingCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if m.Enabled(e.Level) {
		return ce.AddCore(e, m)
	}
	return ce
}

func (m *maskingCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	if e.Message != "" {
		e.Message = m.maskPattern.ReplaceAllString(e.Message, redacted)
	}
	return m.Core.Write(e, m.redact(fields))
}

func (m *maskingCore) redact(fields []zapcore.Field) []zapcore.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := m.sensitive[strings.ToLower(f.Key)]; ok {
			out = append(out, zap.String(f.Key, redacted))
			continue
		}
		out = append(out, f)
	}
	return out
}
