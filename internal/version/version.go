package version

// Version is the semantic version of the metalink binaries.
const Version = "0.1.0"
