package logger

// RedactSecret masks a credential for safe logging.
// "sk-abc123def456" → "sk-a***f456"
// Values of 8 chars or fewer are fully masked.
func RedactSecret(val string) string {
	if len(val) <= 8 {
		return "***"
	}
	return val[:4] + "***" + val[len(val)-4:]
}
