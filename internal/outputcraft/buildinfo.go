package outputcraft

import "github.com/Norgate-AV/andromeda/internal/project"

// Unknown stands in for missing variant and version names
const Unknown = "unknown"

// BuildInfo is the read-only description of a variant handed to the Naming
// callback. BuildType points at the host's build type and must not be
// modified.
type BuildInfo struct {
	AppID       string
	AppName     string
	AppDesc     string
	DirName     string
	FlavorName  string
	VariantName string
	VersionName string
	VersionCode int
	BuildType   *project.BuildType
}

func newBuildInfo(v project.Variant, appName string) BuildInfo {
	return BuildInfo{
		AppID:       v.ApplicationID,
		AppName:     appName,
		AppDesc:     v.Description,
		DirName:     v.DirName,
		FlavorName:  v.FlavorName,
		VariantName: orUnknown(v.Name),
		VersionName: orUnknown(v.VersionName),
		VersionCode: v.VersionCode,
		BuildType:   v.BuildType,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}

	return s
}
