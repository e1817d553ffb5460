package version

// AppVersion is the release version of the websecura client.
const AppVersion = "1.0.0"
