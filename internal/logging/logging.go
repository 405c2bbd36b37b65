package logging

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeBot
	TypeDownload
	TypeLedger
	TypeWeb
)

func (t TypeEnum) String() string {
	switch t {
	case TypeBot:
		return "bot"
	case TypeDownload:
		return "download"
	case TypeLedger:
		return "ledger"
	case TypeWeb:
		return "web"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}
