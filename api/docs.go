package api

// @title WebSecura local UI
// @version v1.0.0
// @description Pages and JSON endpoints served by `websecura serve`. Scans run on the remote WebSecura backend.

// @host localhost:8779
// @BasePath /
// @schemes http
