// Package version хранит сведения о сборке. Значения проставляются через -ldflags:
//
//	-X github.com/vladislavdragonenkov/shop/internal/version.version=v1.2.3
//
// Если commit не задан, берётся vcs.revision из debug.ReadBuildInfo.
package version

import (
	"runtime/debug"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const unknown = "unknown"

// Build — версия сервиса для стартового лога и /health.
type Build struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

var current = sync.OnceValue(func() Build {
	info, _ := debug.ReadBuildInfo()
	return resolve(version, commit, date, info)
})

// Current возвращает сведения о текущей сборке.
func Current() Build { return current() }

func resolve(v, c, d string, info *debug.BuildInfo) Build {
	b := Build{Version: v, Commit: c, Date: d}
	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}

	if b.Version == "" {
		b.Version = "dev"
	}
	if b.Commit == "" {
		b.Commit = unknown
	}
	if b.Date == "" {
		b.Date = unknown
	}
	return b
}

// Short возвращает коммит, укороченный до 12 символов.
func (b Build) Short() string {
	if len(b.Commit) > 12 {
		return b.Commit[:12]
	}
	return b.Commit
}

// Fields отдаёт поля для стартового лога.
func (b Build) Fields() log.Fields {
	return log.Fields{
		"version":  b.Version,
		"commit":   b.Short(),
		"date":     b.Date,
		"modified": b.Modified,
	}
}
