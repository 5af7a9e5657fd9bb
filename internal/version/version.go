package version

// Build metadata, overridable at link time:
//
//	go build -ldflags "-X collabhub/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}
