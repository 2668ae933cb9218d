// Package buildinfo хранит сведения о сборке: версию, дату и commit.
// Значения передаются через -ldflags, недостающие берутся из метаданных модуля.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"

	"go.uber.org/zap"
)

// NotAvailable подставляется вместо неизвестного значения
const NotAvailable = "N/A"

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// New создает Info из значений, переданных через -ldflags.
// Пустые значения дополняются из runtime/debug.BuildInfo, оставшиеся заменяются на NotAvailable.
func New(version, date, commit string) Info {
	info := Info{Version: version, Date: date, Commit: commit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.fill(bi)
	}
	return info.orDefault()
}

// fill дополняет пустые поля данными модуля и VCS
func (info Info) fill(bi *debug.BuildInfo) Info {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

func (info Info) orDefault() Info {
	if info.Version == "" {
		info.Version = NotAvailable
	}
	if info.Date == "" {
		info.Date = NotAvailable
	}
	if info.Commit == "" {
		info.Commit = NotAvailable
	}
	return info
}

// Print выводит информацию о сборке в w
func (info Info) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		info.Version, info.Date, info.Commit)
	return err
}

// Fields возвращает информацию о сборке в виде полей zap для стартового сообщения
func (info Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", info.Version),
		zap.String("build_date", info.Date),
		zap.String("commit", info.Commit),
	}
}

// String возвращает строковое представление информации о сборке
func (info Info) String() string {
	return fmt.Sprintf("Version: %s, Date: %s, Commit: %s", info.Version, info.Date, info.Commit)
}
