// Package buildinfo reports the version of the chanbench binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// version is set by the linker, for instance,
// -ldflags "-X github.com/kakao/chanbench/internal/buildinfo.version=v0.1.0".
var version = "devel"

type Info struct {
	Version   string
	GoVersion string
	Revision  string
	Time      string
	OS        string
	Arch      string
}

func Read() Info {
	info := Info{Version: version}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = buildInfo.GoVersion
	for _, kv := range buildInfo.Settings {
		switch kv.Key {
		case "vcs.revision":
			info.Revision = kv.Value
		case "vcs.time":
			info.Time = kv.Value
		case "GOOS":
			info.OS = kv.Value
		case "GOARCH":
			info.Arch = kv.Value
		}
	}
	return info
}

func (info Info) String() string {
	var sb strings.Builder
	sb.WriteString(info.Version + "\n")
	sb.WriteString("Go Version:  " + info.GoVersion + "\n")
	sb.WriteString("Git Commit:  " + info.Revision + "\n")
	sb.WriteString("Built:       " + info.Time + "\n")
	sb.WriteString("OS/Arch:     " + info.OS + "/" + info.Arch)
	return sb.String()
}
